package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for recognized gestures.
// Subscribe to this in your ECS systems to receive taps, drags and pinches.
var GestureEventType = events.NewEventType[gesture.GestureEvent]()

// InputEventType is the Donburi event type for the engine's input channel,
// including cancellations and device changes.
var InputEventType = events.NewEventType[gesture.InputEvent]()

// Status is the engine state mirrored onto the bridge entity after every
// input notification.
type Status struct {
	Device   gesture.DeviceFamily
	Actions  gesture.ActionSet
	Gestures gesture.GestureSet
}

// StatusComponent holds the mirrored Status on the bridge entity.
var StatusComponent = donburi.NewComponentType[Status]()

// Bridge forwards one engine's notifications into a Donburi world.
type Bridge struct {
	world   donburi.World
	entity  donburi.Entity
	engine  *gesture.Engine
	handles []gesture.Handle
}

// NewBridge creates a bridge and its status entity in world.
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{
		world:  world,
		entity: world.Create(StatusComponent),
	}
}

// Entity returns the entity carrying StatusComponent.
func (b *Bridge) Entity() donburi.Entity {
	return b.entity
}

// Attach subscribes to e, replacing any previously attached engine.
// Events are queued; they reach subscribers on ProcessEvents.
func (b *Bridge) Attach(e *gesture.Engine) {
	b.Detach()
	b.engine = e
	b.handles = append(b.handles,
		e.OnInput(func(ev gesture.InputEvent) {
			b.sync()
			InputEventType.Publish(b.world, ev)
		}),
		e.OnGesture(func(ev gesture.GestureEvent) {
			GestureEventType.Publish(b.world, ev)
		}),
	)
	b.sync()
}

// Detach unsubscribes from the attached engine, if any.
func (b *Bridge) Detach() {
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = b.handles[:0]
	b.engine = nil
}

// Close detaches and removes the status entity from the world.
func (b *Bridge) Close() {
	b.Detach()
	if b.world.Valid(b.entity) {
		b.world.Remove(b.entity)
	}
}

func (b *Bridge) sync() {
	if b.engine == nil || !b.world.Valid(b.entity) {
		return
	}
	StatusComponent.SetValue(b.world.Entry(b.entity), Status{
		Device:   b.engine.Device(),
		Actions:  b.engine.Actions(),
		Gestures: b.engine.Gestures(),
	})
}
