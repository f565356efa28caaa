package handler

import (
	"context"
	"net/http"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/feedline/feedline/internal/hub"
	"github.com/feedline/feedline/internal/logger"
)

// Feed events are pushed over a one-way websocket. The client is not
// expected to send anything; its reader runs only to detect the close.
type Events struct {
	hub    *hub.Hub
	logger *logger.Logger
}

func NewEvents(hub *hub.Hub, logger *logger.Logger) *Events {
	return &Events{hub: hub, logger: logger}
}

func (h *Events) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("Events handler: failed to accept websocket", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected shutdown")

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event, ok := <-sub.Events():
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				h.logger.Debug("Events handler: write failed, dropping subscriber", "error", err)
				return
			}
		}
	}
}
