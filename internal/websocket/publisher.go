package websocket

import "github.com/google/uuid"

// EventPublisher is the side of the hub services depend on
type EventPublisher interface {
	// Publish sends an event to all clients subscribed to the ledger
	Publish(ledgerID int32, event Event)
	// Follow moves a user's open connections to the ledger they switched to
	Follow(userID uuid.UUID, ledgerID int32)
}

var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher
func (h *Hub) Publish(ledgerID int32, event Event) {
	h.Broadcast(ledgerID, event)
}

// Follow implements EventPublisher
func (h *Hub) Follow(userID uuid.UUID, ledgerID int32) {
	h.MoveUser(userID, ledgerID)
}

// NoOpPublisher drops every event
type NoOpPublisher struct{}

func (n *NoOpPublisher) Publish(ledgerID int32, event Event) {}
func (n *NoOpPublisher) Follow(userID uuid.UUID, ledgerID int32) {}
