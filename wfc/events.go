package wfc

import (
	"fmt"

	"github.com/RocketPrinter/HexagonalWFC/hex"
)

// EventType classifies an Event.
type EventType int

const (
	// EventEntropyChanged reports a new domain size for a cell.
	EventEntropyChanged EventType = iota
	// EventCollapsed reports that a cell has exactly one tile left.
	EventCollapsed
	// EventContradiction reports that a cell's domain became empty.
	EventContradiction
	// EventUndone reports one undone batch; Count is the number of restored
	// tiles.
	EventUndone
	// EventReset reports that every cell was returned to the full catalog.
	EventReset
)

var eventNames = [...]string{"entropy", "collapsed", "contradiction", "undone", "reset"}

// String returns the wire name of t.
func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// MarshalText encodes t by name.
func (t EventType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(eventNames) {
		return nil, fmt.Errorf("wfc: cannot marshal %s", t)
	}
	return []byte(eventNames[t]), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (t *EventType) UnmarshalText(b []byte) error {
	for i, name := range eventNames {
		if string(b) == name {
			*t = EventType(i)
			return nil
		}
	}
	return fmt.Errorf("wfc: unknown event type %q", b)
}

// Event is a change notification. Seq increases by one per event over the
// lifetime of an Engine.
type Event struct {
	Seq      uint64       `json:"seq"`
	Type     EventType    `json:"type"`
	Position hex.Position `json:"pos"`
	// Tile is the variant key for EventCollapsed.
	Tile string `json:"tile,omitempty"`
	// Entropy is the domain size after the change.
	Entropy int `json:"entropy"`
	Count   int `json:"count,omitempty"`
}

// Listener receives events synchronously on the engine's goroutine.
type Listener interface {
	Notify(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// Notify calls f(ev).
func (f ListenerFunc) Notify(ev Event) { f(ev) }

// NopListener ignores every event.
type NopListener struct{}

// Notify does nothing.
func (NopListener) Notify(Event) {}
