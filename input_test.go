package willow3d

import "testing"

const (
	centerX = 400
	centerY = 300
)

func newBoxScene() (*Scene, *Node) {
	s := NewScene()
	box := NewMesh("box", MustGeometry(NewBox(Vec3{1, 1, 1})), ColorWhite)
	s.Root().AddChild(box)
	s.Advance(0)
	return s, box
}

// --- Hit testing ---

func TestHitTestCenter(t *testing.T) {
	s, box := newBoxScene()
	hit := s.hitTest(centerX, centerY)
	if hit.node != box {
		t.Fatalf("hit = %v, want box", hit.node)
	}
	if !approxEqual(hit.dist, 4.5, 1e-9) {
		t.Errorf("dist = %v, want 4.5", hit.dist)
	}
	if !vecApprox(hit.point, Vec3{0, 0, 0.5}, 1e-9) {
		t.Errorf("point = %v, want (0, 0, 0.5)", hit.point)
	}
}

func TestHitTestMiss(t *testing.T) {
	s, _ := newBoxScene()
	if hit := s.hitTest(10, 10); hit.node != nil {
		t.Errorf("hit %v, want nil", hit.node.Name)
	}
}

func TestHitTestOutsideViewport(t *testing.T) {
	s := NewScene()
	plate := NewMesh("plate", MustGeometry(NewBox(Vec3{40, 40, 1})), ColorWhite)
	s.Root().AddChild(plate)
	s.Advance(0)

	if hit := s.hitTest(5, centerY); hit.node != plate {
		t.Fatalf("inside viewport: hit = %v, want plate", hit.node)
	}
	if hit := s.hitTest(-10, centerY); hit.node != nil {
		t.Errorf("left of viewport: hit %v, want nil", hit.node.Name)
	}
	if hit := s.hitTest(centerX, 2*centerY+1); hit.node != nil {
		t.Errorf("below viewport: hit %v, want nil", hit.node.Name)
	}

	s.Camera().Viewport = Rect{}
	if hit := s.hitTest(0, 0); hit.node != nil {
		t.Errorf("empty viewport: hit %v, want nil", hit.node.Name)
	}
}

func TestHitTestNearest(t *testing.T) {
	s := NewScene()
	back := NewMesh("back", MustGeometry(NewBox(Vec3{1, 1, 1})), ColorWhite)
	back.SetPosition(Vec3{0, 0, -1})
	front := NewMesh("front", MustGeometry(NewBox(Vec3{1, 1, 1})), ColorWhite)
	front.SetPosition(Vec3{0, 0, 1})
	// Added front first and back last so tree order favors back.
	s.Root().AddChild(front)
	s.Root().AddChild(back)
	s.Advance(0)

	if got := s.PickAt(centerX, centerY); got != front {
		t.Errorf("PickAt = %v, want front", got.Name)
	}
}

func TestHitTestSkipsNonInteractableAndHidden(t *testing.T) {
	s, box := newBoxScene()
	box.Interactable = false
	if got := s.PickAt(centerX, centerY); got != nil {
		t.Error("non-interactable mesh should not be picked")
	}
	box.Interactable = true
	box.Visible = false
	if got := s.PickAt(centerX, centerY); got != nil {
		t.Error("invisible mesh should not be picked")
	}
}

func TestHitTestInteractableIsPerNode(t *testing.T) {
	s := NewScene()
	group := NewContainer("group") // not interactable
	box := NewMesh("box", MustGeometry(NewBox(Vec3{1, 1, 1})), ColorWhite)
	group.AddChild(box)
	s.Root().AddChild(group)
	if got := s.PickAt(centerX, centerY); got != box {
		t.Error("child of a non-interactable container should still be picked")
	}
}

func TestHitTestFollowsTransform(t *testing.T) {
	s, box := newBoxScene()
	box.SetPosition(Vec3{2, 0, 0})
	if got := s.PickAt(centerX, centerY); got != nil {
		t.Error("moved box should no longer be under the center")
	}
	sx, sy, _, _ := s.Camera().Project(Vec3{2.2, -0.1, 0.5})
	if got := s.PickAt(sx, sy); got != box {
		t.Error("box should be picked at its projected position")
	}
}

// --- Callbacks ---

func TestCallbackOrderSceneThenNode(t *testing.T) {
	s, box := newBoxScene()
	var order []string
	s.OnPointerDown(func(PointerContext) { order = append(order, "scene") })
	box.OnPointerDown = func(PointerContext) { order = append(order, "node") }

	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	if len(order) != 2 || order[0] != "scene" || order[1] != "node" {
		t.Errorf("order = %v, want [scene node]", order)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s, _ := newBoxScene()
	count := 0
	h := s.OnClick(func(ClickContext) { count++ })
	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	h.Remove()
	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	if count != 1 {
		t.Errorf("click count = %d, want 1", count)
	}
	h.Remove() // second remove is a no-op
}

func TestHoverEnterLeave(t *testing.T) {
	s, box := newBoxScene()
	var events []string
	box.OnPointerEnter = func(ctx PointerContext) {
		events = append(events, "enter")
		if ctx.Node != box || ctx.Current != box {
			t.Error("enter context should target the box")
		}
	}
	box.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	s.processPointer(centerX+1, centerY, false, MouseButtonLeft, 0) // still over the box
	s.processPointer(10, 10, false, MouseButtonLeft, 0)

	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestClickDetection(t *testing.T) {
	s, box := newBoxScene()
	clicks := 0
	box.OnClick = func(ctx ClickContext) {
		clicks++
		if ctx.Button != MouseButtonLeft {
			t.Errorf("Button = %v, want left", ctx.Button)
		}
	}
	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	if clicks != 0 {
		t.Error("click should not fire on press")
	}
	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestClickNotFiredOnDifferentNode(t *testing.T) {
	s, box := newBoxScene()
	clicks := 0
	box.OnClick = func(ClickContext) { clicks++ }
	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	s.processPointer(10, 10, false, MouseButtonLeft, 0)
	if clicks != 0 {
		t.Error("release off the pressed node should not click")
	}
}

// --- Propagation ---

func newGroupScene() (*Scene, *Node, *Node) {
	s := NewScene()
	group := NewContainer("group")
	box := NewMesh("box", MustGeometry(NewBox(Vec3{1, 1, 1})), ColorWhite)
	group.AddChild(box)
	s.Root().AddChild(group)
	s.Advance(0)
	return s, group, box
}

func TestEventsBubbleToAncestors(t *testing.T) {
	s, group, box := newGroupScene()
	var got PointerContext
	called := false
	group.OnClick = func(ctx ClickContext) {
		called = true
		got = ctx
	}
	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	if !called {
		t.Fatal("group should receive the bubbled click")
	}
	if got.Node != box || got.Current != group {
		t.Errorf("Node = %v, Current = %v; want box, group", got.Node.Name, got.Current.Name)
	}
}

func TestStopPropagation(t *testing.T) {
	s, group, box := newGroupScene()
	var order []string
	box.OnPointerEnter = func(ctx PointerContext) {
		order = append(order, "box")
		ctx.StopPropagation()
	}
	group.OnPointerEnter = func(PointerContext) { order = append(order, "group") }
	sceneCalls := 0
	s.OnPointerEnter(func(PointerContext) { sceneCalls++ })

	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	if len(order) != 1 || order[0] != "box" {
		t.Errorf("order = %v, want [box]", order)
	}
	if sceneCalls != 1 {
		t.Errorf("scene handler calls = %d, want 1", sceneCalls)
	}
}

func TestStopPropagationIsPerEvent(t *testing.T) {
	s, group, box := newGroupScene()
	box.OnPointerEnter = func(ctx PointerContext) { ctx.StopPropagation() }
	leaves := 0
	group.OnPointerLeave = func(PointerContext) { leaves++ }

	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	s.processPointer(10, 10, false, MouseButtonLeft, 0)
	if leaves != 1 {
		t.Errorf("group leaves = %d, want 1", leaves)
	}
}

func TestLeaveSkipsDisposedNode(t *testing.T) {
	s, box := newBoxScene()
	leaves := 0
	s.OnPointerLeave(func(PointerContext) { leaves++ })
	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	box.Dispose()
	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)
	if leaves != 0 {
		t.Errorf("leave fired %d times for a disposed node", leaves)
	}
}

// --- ECS bridge ---

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(e InteractionEvent) {
	r.events = append(r.events, e)
}

func TestECSBridge(t *testing.T) {
	s, box := newBoxScene()
	box.EntityID = 42
	store := &recordingStore{}
	s.SetEntityStore(store)

	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	s.processPointer(centerX, centerY, false, MouseButtonLeft, 0)

	var types []EventType
	for _, e := range store.events {
		if e.EntityID != 42 {
			t.Errorf("EntityID = %d, want 42", e.EntityID)
		}
		types = append(types, e.Type)
	}
	want := []EventType{EventPointerEnter, EventPointerDown, EventClick, EventPointerUp}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestECSBridgeNoEntity(t *testing.T) {
	s, _ := newBoxScene()
	store := &recordingStore{}
	s.SetEntityStore(store)
	s.processPointer(centerX, centerY, true, MouseButtonLeft, 0)
	if len(store.events) != 0 {
		t.Errorf("nodes without EntityID should not emit, got %d", len(store.events))
	}
}
