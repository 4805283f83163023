// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"pollcast/hub"
)

type WSHandler struct {
	hub *hub.Hub
}

func NewWSHandler(h *hub.Hub) *WSHandler {
	return &WSHandler{hub: h}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST API is origin-open (see middleware.CORS); the stream follows
	// the same policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Connect handles GET /ws
//
// Upgrades the connection and subscribes it to the broadcast hub. The server
// pushes no initial state; clients bootstrap with a point-in-time read and
// then apply events. Incoming messages are drained and ignored - the read
// side only detects disconnects.
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	obs := h.hub.Subscribe(conn)
	defer h.hub.Unsubscribe(obs)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
