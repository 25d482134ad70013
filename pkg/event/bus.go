// pkg/event/bus.go
package event

import (
	"sync"
)

// Type represents the type of a published event
type Type string

// Event types published after each simulation tick
const (
	ShipDestroyed    Type = "ship_destroyed"
	ShipRespawned    Type = "ship_respawned"
	TurretDestroyed  Type = "turret_destroyed"
	FactoryDestroyed Type = "factory_destroyed"
)

// Event is the base interface for all published events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// IndexEvent reports something that happened to one entity, identified by
// its index in the owning collection.
type IndexEvent struct {
	BaseEvent
	Index int
	Tick  uint64
}

// NewIndexEvent creates a new index event
func NewIndexEvent(eventType Type, source interface{}, index int, tick uint64) *IndexEvent {
	return &IndexEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Index: index,
		Tick:  tick,
	}
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID        uint64
	EventType Type
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{ID: id, EventType: eventType}
}

// Unsubscribe removes a handler. It reports whether the subscription was
// still registered.
func (b *Bus) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.EventType]
	for i, reg := range regs {
		if reg.id == sub.ID {
			b.handlers[sub.EventType] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers in subscription order
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	handlers := make([]Handler, len(regs))
	for i, reg := range regs {
		handlers[i] = reg.handler
	}
	b.mu.RUnlock()

	// Handlers run without the lock so they may subscribe or unsubscribe.
	for _, handler := range handlers {
		handler(event)
	}
}

// HandlerCount returns the number of handlers for an event type
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
