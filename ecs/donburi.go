package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/willow3d"
)

// InteractionEventType is the Donburi event type for willow3d interaction
// events.
var InteractionEventType = events.NewEventType[willow3d.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) willow3d.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event willow3d.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
