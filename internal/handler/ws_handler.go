/*
Package handler provides the HTTP and WebSocket surface of the Parlor server.

This file contains HandleWebSocket, which rate-limits and validates a
connection request, upgrades it, runs the connect use case, and drives the
client's read/write pumps until the connection ends.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"parlor/internal/app/chat"
	"parlor/internal/pkg/errs"
	"parlor/internal/pkg/limiter"
	"parlor/internal/pkg/logx"
	"parlor/internal/pkg/resp"
)

// HandleWebSocket creates the HandlerFunc serving GET /ws/{code}.
//
// The client identifies itself with the client_id query parameter; the id is
// assigned by the connecting side, never by the server. After the upgrade
// the connect use case decides admission: duplicates and full rooms are
// turned into custom close frames so the client can tell them apart.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rateLimiter.GetLimiter(limiter.ClientIP(r)).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "ip", limiter.ClientIP(r))
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		roomCode := chi.URLParam(r, "code")
		room := deps.Manager.GetRoom(roomCode)
		if room == nil {
			logx.Info("WebSocket connection rejected: room not found.", "room_code", roomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		id, err := chat.NewClientID(r.URL.Query().Get("client_id"))
		if err != nil {
			logx.Warn("WebSocket request rejected: invalid client_id.", "room_code", roomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidClientID, chat.MaxClientIDChars))
			return
		}

		// Advisory pre-check; Connect re-checks atomically.
		if room.IsFull() {
			logx.Info("WebSocket connection rejected: room is full.", "room_code", roomCode)
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomIsFull))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := NewClient(room, conn, id)

		// The write pump starts only after admission: until then the handler
		// goroutine is the connection's sole writer, so Reject below never
		// races a ping.
		roster, _, err := room.Connect(id, client)
		if err != nil {
			switch {
			case errs.Is(err, errs.ErrDuplicateClient):
				client.Reject(WsCloseCodeDuplicateClient, "Client id already connected.")
			case errs.Is(err, errs.ErrRoomIsFull):
				client.Reject(WsCloseCodeRoomFull, "Room is full.")
			case errs.Is(err, errs.ErrRoomNotFound):
				client.Reject(websocket.CloseGoingAway, "Room no longer exists.")
			default:
				client.Reject(websocket.ClosePolicyViolation, "Connection refused.")
			}
			return
		}

		go client.WritePump()

		logx.Info("WebSocket connection established.",
			"client_id", id.String(),
			"room_code", roomCode,
		)

		// The new client gets the full roster before any other event.
		if payload, renderErr := renderRoster(roster); renderErr == nil {
			if deliverErr := client.Deliver(payload); deliverErr != nil {
				logx.Warn("Failed to queue roster payload.", "client_id", id.String())
			}
		} else {
			logx.Error(renderErr, "Failed to render roster payload")
		}

		client.ReadPump()
	}
}
