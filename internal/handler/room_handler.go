/*
Package handler provides the HTTP and WebSocket surface of the Parlor server.

This file contains the room management endpoints: creating a room and
inspecting live room state.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parlor/internal/pkg/errs"
	"parlor/internal/pkg/logx"
	"parlor/internal/pkg/randx"
	"parlor/internal/pkg/req"
	"parlor/internal/pkg/resp"
)

// roomCodeAttempts bounds retries when a generated code collides.
const roomCodeAttempts = 5

// RoomSummary is the wire form of one room in the list endpoint.
type RoomSummary struct {
	Code             string   `json:"code"`
	Participants     []string `json:"participants"`
	ParticipantCount int      `json:"participant_count"`
	MessageCount     int      `json:"message_count"`
	CreatedAt        string   `json:"created_at"`
}

// ParticipantDetail is the wire form of one participant in the detail endpoint.
type ParticipantDetail struct {
	ClientID    string `json:"client_id"`
	ConnectedAt string `json:"connected_at"`
}

// RoomDetail is the wire form of the room detail endpoint.
type RoomDetail struct {
	Code         string              `json:"code"`
	Participants []ParticipantDetail `json:"participants"`
	MessageCount int                 `json:"message_count"`
	Capacity     int                 `json:"capacity"`
	CreatedAt    string              `json:"created_at"`
}

// CreateRoomRequest is the optional body of the create endpoint. When a room
// code is supplied the room is created under that exact code; otherwise the
// server generates one.
type CreateRoomRequest struct {
	RoomCode string `json:"room_code,omitempty"`
}

// HandleCreateRoom creates the HandlerFunc serving POST /api/chat/create.
// It registers a fresh room under the requested code, or a generated one.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 {
			var body CreateRoomRequest
			if bindErr := req.BindJSON(r, &body); bindErr != nil {
				resp.RespondError(w, r, bindErr)
				return
			}

			if body.RoomCode != "" {
				if !randx.IsValidRoomCode(body.RoomCode) {
					resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
					return
				}

				room, createErr := deps.Manager.CreateRoom(body.RoomCode)
				if createErr != nil {
					resp.RespondError(w, r, errs.NewError(errs.CodeOf(createErr)))
					return
				}

				resp.RespondSuccess(w, r, map[string]any{
					"room_code": room.Code,
					"capacity":  room.Capacity,
				})
				return
			}
		}

		for attempt := 0; attempt < roomCodeAttempts; attempt++ {
			code, err := randx.RoomCode()
			if err != nil {
				logx.Error(err, "Failed to generate room code")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}

			room, createErr := deps.Manager.CreateRoom(code)
			if createErr != nil {
				if errs.Is(createErr, errs.ErrRoomCodeExists) {
					continue
				}
				resp.RespondError(w, r, errs.NewError(errs.CodeOf(createErr)))
				return
			}

			resp.RespondSuccess(w, r, map[string]any{
				"room_code": room.Code,
				"capacity":  room.Capacity,
			})
			return
		}

		logx.Error(nil, "Exhausted room code generation attempts")
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
	}
}

// HandleListRooms creates the HandlerFunc serving GET /api/rooms.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms := deps.Manager.Rooms()

		summaries := make([]RoomSummary, 0, len(rooms))
		for _, room := range rooms {
			participants := room.Participants()

			ids := make([]string, 0, len(participants))
			for _, p := range participants {
				ids = append(ids, p.ID.String())
			}

			summaries = append(summaries, RoomSummary{
				Code:             room.Code,
				Participants:     ids,
				ParticipantCount: len(participants),
				MessageCount:     len(room.Messages()),
				CreatedAt:        room.CreatedAt.RFC3339(),
			})
		}

		resp.RespondSuccess(w, r, summaries)
	}
}

// HandleRoomDetail creates the HandlerFunc serving GET /api/rooms/{code}.
func HandleRoomDetail(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		room := deps.Manager.GetRoom(code)
		if room == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		participants := room.Participants()

		details := make([]ParticipantDetail, 0, len(participants))
		for _, p := range participants {
			details = append(details, ParticipantDetail{
				ClientID:    p.ID.String(),
				ConnectedAt: p.JoinedAt.RFC3339(),
			})
		}

		resp.RespondSuccess(w, r, RoomDetail{
			Code:         room.Code,
			Participants: details,
			MessageCount: len(room.Messages()),
			Capacity:     room.Capacity,
			CreatedAt:    room.CreatedAt.RFC3339(),
		})
	}
}
