package willow3d

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.Position = Vec3{10, 20, 0}

	g := TweenPosition(node, Vec3{100, 200, -5}, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if !vecApprox(node.Position, Vec3{100, 200, -5}, 0.5) {
		t.Errorf("Position = %v, want ~(100, 200, -5)", node.Position)
	}
}

func TestTweenScaleMarksDirty(t *testing.T) {
	node := NewContainer("scale")
	node.transformDirty = false

	g := TweenScale(node, Vec3{1.2, 1.2, 1.2}, 0.5, ease.Linear)
	g.Update(0.25)

	if !node.transformDirty {
		t.Error("tween should mark the node dirty")
	}
	if math.Abs(node.Scale[0]-1.1) > 0.01 {
		t.Errorf("Scale.x = %f, want ~1.1", node.Scale[0])
	}
}

func TestTweenRotation(t *testing.T) {
	node := NewContainer("rot")
	g := TweenRotation(node, Vec3{0, math.Pi, 0}, 1, ease.Linear)
	g.Update(1)
	if !g.Done || math.Abs(node.Rotation[1]-math.Pi) > 1e-5 {
		t.Errorf("Rotation = %v, want (0, pi, 0)", node.Rotation)
	}
}

func TestTweenColorAllComponents(t *testing.T) {
	node := NewContainer("color")
	node.Color = Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(node, target, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(node.Color.R) > 0.01 || math.Abs(node.Color.G-1) > 0.01 ||
		math.Abs(node.Color.B-0.5) > 0.01 || math.Abs(node.Color.A-0.5) > 0.01 {
		t.Errorf("Color = %v, want ~%v", node.Color, target)
	}
}

func TestTweenStopsOnDisposedNode(t *testing.T) {
	node := NewContainer("gone")
	g := TweenPosition(node, Vec3{5, 5, 5}, 1, ease.Linear)
	node.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("tween on a disposed node should be done")
	}
	if node.Position != (Vec3{}) {
		t.Error("disposed node should not be written")
	}
}

func TestSceneAddTween(t *testing.T) {
	s := NewScene()
	node := NewContainer("n")
	s.Root().AddChild(node)
	s.AddTween(TweenPosition(node, Vec3{0, 0, 2}, 0.5, ease.Linear))

	s.Advance(0.25)
	if len(s.tweens) != 1 {
		t.Fatalf("tweens = %d, want 1 while running", len(s.tweens))
	}
	s.Advance(0.25)
	if len(s.tweens) != 0 {
		t.Errorf("tweens = %d, want 0 after finishing", len(s.tweens))
	}
	if got := node.WorldPosition(); math.Abs(got[2]-2) > 0.01 {
		t.Errorf("world Z = %v, want 2", got[2])
	}
}
