// Package events carries the engine's outbound notification stream.
//
// The engine emits named events for every state transition (transfers,
// stakes, swaps, proposals) and is agnostic to how consumers deliver or
// persist them. Emission never blocks the emitting operation.
package events

import "time"

// Attribute is a single key/value pair attached to an event.
type Attribute struct {
	Key   string
	Value string
}

// Attr builds an Attribute.
func Attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Event is a named engine notification with ordered attributes.
type Event struct {
	Type       string
	Attributes []Attribute
	Time       time.Time
}

// New builds an Event of the given type. The emitter stamps the time.
func New(eventType string, attrs ...Attribute) Event {
	return Event{Type: eventType, Attributes: attrs}
}

// Attribute returns the value for key and whether it was present.
func (e Event) Attribute(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Emitter publishes events to interested consumers.
type Emitter interface {
	Emit(event Event)
}

// NopEmitter discards every event. Used in tests and as the default sink.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(Event) {}
