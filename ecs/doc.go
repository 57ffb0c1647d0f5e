// Package ecs provides ECS adapters for willow3d's interaction event system.
//
// The primary adapter is [NewDonburiStore], which bridges willow3d
// interaction events (pointer enter, leave, click, press, release, move)
// into a [Donburi] world as typed events. Subscribe to
// [InteractionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Tracker] goes one step further: it gives each bound node an entity with
// an [InteractionStats] component and keeps the counts current.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
