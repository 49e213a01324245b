/*
Package handler provides the HTTP and WebSocket surface of the Parlor server.

This file defines the wire representation of domain events. The chat core
only decides which clients receive which event; encoding the event into the
payload text pushed through a sink happens here, behind the
chat.EventRenderer interface.
*/
package handler

import (
	"encoding/json"

	"parlor/internal/app/chat"
)

// Wire event type tags.
const (
	EventRoomConnected     = "room-connected"
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
	EventChat              = "chat"
	EventError             = "error"
)

// ParticipantInfo is the wire form of one roster entry.
type ParticipantInfo struct {
	ClientID    string `json:"client_id"`
	ConnectedAt int64  `json:"connected_at"`
}

// RoomConnectedEvent is sent to a client right after its own connect,
// carrying the full roster including the client itself.
type RoomConnectedEvent struct {
	Type         string            `json:"type"`
	Participants []ParticipantInfo `json:"participants"`
}

// ParticipantJoinedEvent announces a new participant to everyone else.
type ParticipantJoinedEvent struct {
	Type        string `json:"type"`
	ClientID    string `json:"client_id"`
	ConnectedAt int64  `json:"connected_at"`
}

// ParticipantLeftEvent announces a departure to the remaining participants.
type ParticipantLeftEvent struct {
	Type           string `json:"type"`
	ClientID       string `json:"client_id"`
	DisconnectedAt int64  `json:"disconnected_at"`
}

// ChatEvent carries one chat message to its broadcast targets.
type ChatEvent struct {
	Type      string `json:"type"`
	ClientID  string `json:"client_id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorEvent reports a rejected frame back to the offending client.
type ErrorEvent struct {
	Type    string `json:"type"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InboundFrame is the shape clients send for a chat message. Frames that do
// not parse as JSON are treated as bare content text.
type InboundFrame struct {
	Type    string `json:"type,omitempty"`
	Content string `json:"content"`
}

// JSONRenderer encodes domain events as the JSON documents above.
type JSONRenderer struct{}

// NewJSONRenderer returns the renderer injected into the chat use cases.
func NewJSONRenderer() chat.EventRenderer {
	return JSONRenderer{}
}

// RenderJoined implements chat.EventRenderer.
func (JSONRenderer) RenderJoined(p chat.Participant) (string, error) {
	return marshalEvent(ParticipantJoinedEvent{
		Type:        EventParticipantJoined,
		ClientID:    p.ID.String(),
		ConnectedAt: p.JoinedAt.Millis(),
	})
}

// RenderLeft implements chat.EventRenderer.
func (JSONRenderer) RenderLeft(id chat.ClientID, disconnectedAt chat.Timestamp) (string, error) {
	return marshalEvent(ParticipantLeftEvent{
		Type:           EventParticipantLeft,
		ClientID:       id.String(),
		DisconnectedAt: disconnectedAt.Millis(),
	})
}

// RenderMessage implements chat.EventRenderer.
func (JSONRenderer) RenderMessage(m chat.Message) (string, error) {
	return marshalEvent(ChatEvent{
		Type:      EventChat,
		ClientID:  m.Sender.String(),
		Content:   m.Content.String(),
		Timestamp: m.SentAt.Millis(),
	})
}

// renderRoster builds the room-connected payload for a freshly connected client.
func renderRoster(roster []chat.Participant) (string, error) {
	participants := make([]ParticipantInfo, 0, len(roster))
	for _, p := range roster {
		participants = append(participants, ParticipantInfo{
			ClientID:    p.ID.String(),
			ConnectedAt: p.JoinedAt.Millis(),
		})
	}

	return marshalEvent(RoomConnectedEvent{
		Type:         EventRoomConnected,
		Participants: participants,
	})
}

func marshalEvent(event any) (string, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
