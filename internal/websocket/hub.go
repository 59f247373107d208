package websocket

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface is what the hub needs from a connection
type ClientInterface interface {
	ID() string
	UserID() uuid.UUID
	LedgerID() int32
	Send(data []byte) error
	Close() error
	setLedgerID(id int32)
}

// Hub fans ledger events out to subscribed clients. Safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	ledgers map[int32]map[string]ClientInterface
	users   map[uuid.UUID]map[string]ClientInterface
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{
		ledgers: make(map[int32]map[string]ClientInterface),
		users:   make(map[uuid.UUID]map[string]ClientInterface),
	}
}

// Register subscribes a client to its ledger
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.join(client.LedgerID(), client)
	if h.users[client.UserID()] == nil {
		h.users[client.UserID()] = make(map[string]ClientInterface)
	}
	h.users[client.UserID()][client.ID()] = client

	log.Debug().
		Int32("ledger_id", client.LedgerID()).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a client; unknown clients are ignored
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.leave(client.LedgerID(), client) {
		return
	}
	if byUser, ok := h.users[client.UserID()]; ok {
		delete(byUser, client.ID())
		if len(byUser) == 0 {
			delete(h.users, client.UserID())
		}
	}

	log.Debug().
		Int32("ledger_id", client.LedgerID()).
		Str("client_id", client.ID()).
		Msg("WebSocket client unregistered")
}

// MoveUser resubscribes every open connection of a user to ledgerID.
// Called when the user switches between personal and group ledgers.
func (h *Hub) MoveUser(userID uuid.UUID, ledgerID int32) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	moved := 0
	for _, client := range h.users[userID] {
		if client.LedgerID() == ledgerID {
			continue
		}
		h.leave(client.LedgerID(), client)
		client.setLedgerID(ledgerID)
		h.join(ledgerID, client)
		moved++
	}
	if moved > 0 {
		log.Debug().
			Str("user_id", userID.String()).
			Int32("ledger_id", ledgerID).
			Int("client_count", moved).
			Msg("WebSocket clients moved")
	}
	return moved
}

// join and leave expect h.mu to be held
func (h *Hub) join(ledgerID int32, client ClientInterface) {
	if h.ledgers[ledgerID] == nil {
		h.ledgers[ledgerID] = make(map[string]ClientInterface)
	}
	h.ledgers[ledgerID][client.ID()] = client
}

func (h *Hub) leave(ledgerID int32, client ClientInterface) bool {
	clients, ok := h.ledgers[ledgerID]
	if !ok {
		return false
	}
	if _, exists := clients[client.ID()]; !exists {
		return false
	}
	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.ledgers, ledgerID)
	}
	return true
}

// Broadcast sends an event to every client subscribed to ledgerID
func (h *Hub) Broadcast(ledgerID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int32("ledger_id", ledgerID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	recipients := make([]ClientInterface, 0, len(h.ledgers[ledgerID]))
	for _, client := range h.ledgers[ledgerID] {
		recipients = append(recipients, client)
	}
	h.mu.RUnlock()

	if len(recipients) == 0 {
		return
	}

	for _, client := range recipients {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Int32("ledger_id", ledgerID).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Int32("ledger_id", ledgerID).
		Str("event_type", event.Type).
		Int("client_count", len(recipients)).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients subscribed to a ledger
func (h *Hub) ClientCount(ledgerID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.ledgers[ledgerID])
}

// TotalClientCount returns the number of connected clients across all ledgers
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.ledgers {
		total += len(clients)
	}
	return total
}
