package events

import "time"

// Event is anything published on the workspace event bus.
type Event interface {
	// EventType is the bus code, e.g. "FILE_RENAMED". It doubles as the
	// subject suffix.
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the only Event implementation; decoders rebuild it from the
// wire form.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }

// UserOf returns the owning user id carried by workspace events.
func UserOf(e Event) (string, bool) {
	id, ok := e.Payload()["user_id"].(string)
	return id, ok && id != ""
}
