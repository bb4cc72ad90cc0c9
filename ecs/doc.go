// Package ecs bridges gesture engines into a [Donburi] world.
//
// A [Bridge] republishes an engine's input and gesture notifications as
// typed Donburi events and mirrors the engine's live state onto a status
// entity. Subscribe to [GestureEventType] or
// [InputEventType] in your ECS systems to receive them.
//
// Usage:
//
//	bridge := ecs.NewBridge(world)
//	bridge.Attach(engine)
//	GestureEventType.Subscribe(world, onGesture)
//	// each tick, after feeding the engine:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
