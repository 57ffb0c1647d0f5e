package willow3d

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenColor). Either call Update(dt) each frame yourself or
// hand the group to Scene.AddTween. The group auto-applies values and marks
// the node dirty. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func tweenVec3(node *Node, field *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(field[i]), float32(to[i]), duration, fn)
		g.fields[i] = &field[i]
	}
	return g
}

// TweenPosition creates a TweenGroup that moves node to the target position.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVec3(node, &node.Position, to, duration, fn)
}

// TweenScale creates a TweenGroup that animates node.Scale to the target.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVec3(node, &node.Scale, to, duration, fn)
}

// TweenRotation creates a TweenGroup that animates node.Rotation (radians).
func TweenRotation(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVec3(node, &node.Rotation, to, duration, fn)
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}

// AddTween registers g to be advanced by every Scene.Advance until it is
// done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// updateTweens advances scene-owned tweens and drops finished ones.
func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}
