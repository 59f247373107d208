package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/budgetbook/budgetbook-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// JWTValidator validates a JWT and resolves the ledger the connection should follow
type JWTValidator interface {
	ValidateToken(ctx context.Context, token string) (websocket.Subscription, error)
}

type originSet map[string]struct{}

func newOriginSet(origins []string) originSet {
	set := make(originSet, len(origins))
	for _, o := range origins {
		set[strings.TrimRight(strings.TrimSpace(o), "/")] = struct{}{}
	}
	return set
}

// allows accepts requests without an Origin header (CLI and mobile clients)
func (s originSet) allows(r *http.Request) bool {
	origin := r.Header.Get(echo.HeaderOrigin)
	if origin == "" {
		return true
	}
	if _, ok := s[origin]; ok {
		return true
	}
	log.Warn().Str("origin", origin).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// WebSocketHandler upgrades authenticated requests and subscribes them to a ledger
type WebSocketHandler struct {
	hub       *websocket.Hub
	validator JWTValidator
	upgrader  ws.Upgrader
}

func NewWebSocketHandler(hub *websocket.Hub, validator JWTValidator, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		validator: validator,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     newOriginSet(allowedOrigins).allows,
		},
	}
}

// requestToken reads ?token= first since browsers cannot set headers on the upgrade request
func requestToken(c echo.Context) string {
	if token := c.QueryParam("token"); token != "" {
		return token
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return auth[7:]
	}
	return ""
}

// HandleWS handles WebSocket connection requests at GET /ws
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	token := requestToken(c)
	if token == "" {
		log.Debug().Msg("WebSocket connection rejected: missing token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	sub, err := h.validator.ValidateToken(c.Request().Context(), token)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Str("user_id", sub.UserID.String()).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, sub.UserID, sub.LedgerID, h.hub)
	h.hub.Register(client)

	log.Info().
		Str("user_id", sub.UserID.String()).
		Int32("ledger_id", sub.LedgerID).
		Str("client_id", client.ID()).
		Int("ledger_clients", h.hub.ClientCount(sub.LedgerID)).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
