package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the verb half of an event name
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeJoined  EventType = "member_joined"
)

// EntityType is the noun half of an event name
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeGroup       EntityType = "group"
)

// Event is the envelope sent to clients: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent stamps an event with the current UTC time
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// GroupMemberJoined tells existing members that the group grew
func GroupMemberJoined(payload interface{}) Event {
	return NewEvent(EventTypeJoined, EntityTypeGroup, payload)
}
