// Package telemetry provides run statistics, performance timing and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDeath EventType = iota
	EventReset
)

func (t EventType) String() string {
	switch t {
	case EventDeath:
		return "death"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick uint64
	Life int
}

// NewDeathEvent creates a player death event.
func NewDeathEvent(tick uint64, life int) Event {
	return Event{Type: EventDeath, Tick: tick, Life: life}
}

// NewResetEvent creates a world reset event. Life is the index of the new world.
func NewResetEvent(tick uint64, life int) Event {
	return Event{Type: EventReset, Tick: tick, Life: life}
}
