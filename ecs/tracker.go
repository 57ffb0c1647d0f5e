package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/willow3d"
)

// InteractionStats counts the pointer events a bound node received.
type InteractionStats struct {
	Name    string
	Enters  int
	Leaves  int
	Clicks  int
	Hovered bool
}

// Stats is the component holding InteractionStats.
var Stats = donburi.NewComponentType[InteractionStats]()

// Tracker binds scene nodes to Donburi entities and folds published
// interaction events into their Stats component. Counts update when the
// world's events are processed (events.ProcessAllEvents or
// InteractionEventType.ProcessEvents).
type Tracker struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
	nextID   uint32
}

// NewTracker subscribes a tracker to InteractionEventType on world.
func NewTracker(world donburi.World) *Tracker {
	t := &Tracker{world: world, entities: make(map[uint32]donburi.Entity)}
	InteractionEventType.Subscribe(world, t.handle)
	return t
}

// Bind creates an entity for n and assigns n.EntityID so the scene forwards
// n's events to the store.
func (t *Tracker) Bind(n *willow3d.Node) donburi.Entity {
	t.nextID++
	e := t.world.Create(Stats)
	Stats.Get(t.world.Entry(e)).Name = n.Name
	n.EntityID = t.nextID
	t.entities[t.nextID] = e
	return e
}

// Lookup returns the stats for a bound node.
func (t *Tracker) Lookup(n *willow3d.Node) (InteractionStats, bool) {
	e, ok := t.entities[n.EntityID]
	if !ok || !t.world.Valid(e) {
		return InteractionStats{}, false
	}
	return *Stats.Get(t.world.Entry(e)), true
}

func (t *Tracker) handle(w donburi.World, ev willow3d.InteractionEvent) {
	e, ok := t.entities[ev.EntityID]
	if !ok || !w.Valid(e) {
		return
	}
	st := Stats.Get(w.Entry(e))
	switch ev.Type {
	case willow3d.EventPointerEnter:
		st.Enters++
		st.Hovered = true
	case willow3d.EventPointerLeave:
		st.Leaves++
		st.Hovered = false
	case willow3d.EventClick:
		st.Clicks++
	}
}
