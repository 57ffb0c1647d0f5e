package willow3d

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene()
	if s.Root() == nil || s.Root().Name != "root" {
		t.Fatal("scene should have a root container")
	}
	if s.Camera() == nil {
		t.Fatal("scene should have a camera")
	}
	if vp := s.Camera().Viewport; vp.Width != 800 || vp.Height != 600 {
		t.Errorf("viewport = %v, want 800x600", vp)
	}
}

func TestSetSize(t *testing.T) {
	s := NewScene()
	s.SetSize(640, 480)
	if vp := s.Camera().Viewport; vp != (Rect{Width: 640, Height: 480}) {
		t.Errorf("viewport = %v, want 640x480", vp)
	}
}

func TestAdvanceClock(t *testing.T) {
	s := NewScene()
	var got []FrameContext
	s.SetUpdateFunc(func(ctx FrameContext) { got = append(got, ctx) })

	s.Advance(0.5)
	s.Advance(-1) // clamped to zero
	s.Advance(0.25)

	if len(got) != 3 {
		t.Fatalf("update func ran %d times, want 3", len(got))
	}
	want := []FrameContext{
		{Elapsed: 0.5, Delta: 0.5, Frame: 1},
		{Elapsed: 0.5, Delta: 0, Frame: 2},
		{Elapsed: 0.75, Delta: 0.25, Frame: 3},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if s.Elapsed() != 0.75 || s.Frame() != 3 {
		t.Errorf("Elapsed/Frame = %v/%v, want 0.75/3", s.Elapsed(), s.Frame())
	}
}

func TestUpdateOrder(t *testing.T) {
	s := NewScene()
	var order []string
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.AddChild(b)
	s.Root().AddChild(a)
	s.Root().AddChild(c)
	for _, n := range []*Node{a, b, c} {
		n := n
		n.OnUpdate = func(FrameContext) { order = append(order, n.Name) }
	}
	s.SetUpdateFunc(func(FrameContext) { order = append(order, "scene") })

	s.Advance(0.1)
	want := []string{"scene", "a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestOnUpdateMayMutateTree(t *testing.T) {
	s := NewScene()
	victim := NewContainer("victim")
	victimRan := false
	victim.OnUpdate = func(FrameContext) { victimRan = true }
	killer := NewContainer("killer")
	killer.OnUpdate = func(FrameContext) {
		victim.Dispose()
		s.Root().AddChild(NewContainer("spawned"))
	}
	s.Root().AddChild(killer)
	s.Root().AddChild(victim)

	s.Advance(0.1)
	if victimRan {
		t.Error("a node disposed earlier in the frame should not update")
	}
	if s.Root().FindChild("spawned") == nil {
		t.Error("spawned node missing")
	}
}

func TestOnUpdateTransformAppliedSameFrame(t *testing.T) {
	s := NewScene()
	n := NewContainer("spinner")
	n.OnUpdate = func(ctx FrameContext) {
		n.SetPosition(Vec3{0, ctx.Elapsed, 0})
	}
	s.Root().AddChild(n)
	s.Advance(0.5)
	if got := n.WorldPosition(); got != (Vec3{0, 0.5, 0}) {
		t.Errorf("world position = %v, want (0, 0.5, 0)", got)
	}
}

type countingOverlay struct {
	updates, draws int
}

func (o *countingOverlay) Update()              { o.updates++ }
func (o *countingOverlay) Draw(_ *ebiten.Image) { o.draws++ }

func TestOverlays(t *testing.T) {
	s := NewScene()
	o := &countingOverlay{}
	s.AddOverlay(o)
	s.Advance(0)
	s.Advance(0)
	s.Draw(ebiten.NewImage(100, 100))
	if o.updates != 2 || o.draws != 1 {
		t.Errorf("updates=%d draws=%d, want 2, 1", o.updates, o.draws)
	}
}
