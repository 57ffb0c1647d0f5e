// Package willow3d is a small retained-mode 3D scene graph for [Ebitengine].
//
// It hosts the demo shapes of this repository: flat-shaded meshes (box,
// sphere, torus, torus knot) under a perspective camera, lit by directional
// and ambient lights, with pointer picking and per-frame callbacks.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := willow3d.NewScene()
//	knot, _ := willow3d.NewTorusKnot(1, 0.4, 64, 8, 2, 3)
//	node := willow3d.NewMesh("knot", knot, willow3d.ColorWhite)
//	node.OnUpdate = func(ctx willow3d.FrameContext) {
//		node.Rotation[1] += ctx.Delta
//		node.MarkDirty()
//	}
//	scene.Root().AddChild(node)
//	scene.AddLight(willow3d.NewAmbientLight(0.8))
//	willow3d.Run(scene, willow3d.RunConfig{
//		Title: "Knot", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Frames
//
// [Scene.Advance] steps the scene clock by an explicit delta, then runs the
// scene callback set with [Scene.SetUpdateFunc] and every [Node.OnUpdate] in
// tree order. [Scene.Update] calls Advance with 1/TPS. Tests and scripts call
// Advance directly.
//
// # Interaction
//
// Pointer targets are found by casting a ray from the camera through the
// cursor and taking the nearest interactable triangle. Enter, leave and
// click events are delivered to the target and then bubble to its
// ancestors until a handler calls [PointerContext.StopPropagation].
//
// Everything runs on the game goroutine; nodes are not safe for
// concurrent use.
//
// [Ebitengine]: https://ebitengine.org
package willow3d
