package ecs

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/willow3d"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []willow3d.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e willow3d.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(willow3d.InteractionEvent{
		Type:     willow3d.EventPointerDown,
		EntityID: 42,
		ScreenX:  100,
		ScreenY:  200,
		Button:   willow3d.MouseButtonLeft,
	})
	store.EmitEvent(willow3d.InteractionEvent{
		Type:     willow3d.EventPointerEnter,
		EntityID: 7,
		Point:    willow3d.Vec3{0, 0, 0.5},
	})

	// Events are queued; process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != willow3d.EventPointerDown || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.ScreenX != 100 || e0.ScreenY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.ScreenX, e0.ScreenY)
	}

	e1 := received[1]
	if e1.Type != willow3d.EventPointerEnter || e1.Point != (willow3d.Vec3{0, 0, 0.5}) {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e willow3d.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e willow3d.InteractionEvent) {
		count2++
	})

	store.EmitEvent(willow3d.InteractionEvent{Type: willow3d.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestTrackerCountsSceneEvents(t *testing.T) {
	world := donburi.NewWorld()
	tracker := NewTracker(world)

	scene := willow3d.NewScene()
	scene.SetEntityStore(NewDonburiStore(world))
	box := willow3d.NewMesh("box", willow3d.MustGeometry(willow3d.NewBox(willow3d.Vec3{1, 1, 1})), willow3d.ColorWhite)
	scene.Root().AddChild(box)
	tracker.Bind(box)
	if box.EntityID == 0 {
		t.Fatal("Bind should assign an EntityID")
	}

	scene.InjectMove(400, 300)
	scene.InjectClick(400, 300)
	scene.InjectMove(10, 10)
	for scene.PendingInput() > 0 {
		scene.Advance(1.0 / 60)
	}
	events.ProcessAllEvents(world)

	st, ok := tracker.Lookup(box)
	if !ok {
		t.Fatal("box should be tracked")
	}
	want := InteractionStats{Name: "box", Enters: 1, Leaves: 1, Clicks: 1}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}
}

func TestTrackerUnboundNode(t *testing.T) {
	tracker := NewTracker(donburi.NewWorld())
	if _, ok := tracker.Lookup(willow3d.NewContainer("loose")); ok {
		t.Error("unbound node should not be found")
	}
}
