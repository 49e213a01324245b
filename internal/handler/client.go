/*
Package handler provides the HTTP and WebSocket surface of the Parlor server.

This file defines the Client struct, representing one active WebSocket
connection. The Client is the delivery sink the chat core pushes payloads
through: Deliver queues into a bounded channel that the write pump drains, so
a slow socket never blocks the room. The read pump forwards inbound frames as
SendMessage calls and guarantees Disconnect runs when the connection ends.
*/
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"parlor/internal/app/chat"
	"parlor/internal/pkg/errs"
	"parlor/internal/pkg/logx"
)

const (
	// timeout for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame.
	maxInboundBytes = 16384

	// capacity of the per-client outbound queue.
	sendBuffer = 256

	// WsCloseCodeDuplicateClient is a custom WebSocket Close Code
	// (4000-4999 range) signaling that the client id is already connected.
	WsCloseCodeDuplicateClient = 4001

	// WsCloseCodeRoomFull signals that the room reached capacity.
	WsCloseCodeRoomFull = 4002
)

// Client represents an active WebSocket connection bound to one room.
type Client struct {
	// id is the client identifier supplied by the connecting transport.
	id chat.ClientID

	// room is the chat room the client belongs to.
	room *chat.Room

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// send queues payloads waiting for the write pump.
	send chan string

	// done is closed exactly once when the client shuts down.
	done      chan struct{}
	closeOnce sync.Once

	// structured logger with client and room context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(room *chat.Room, conn *websocket.Conn, id chat.ClientID) *Client {
	return &Client{
		id:   id,
		room: room,
		conn: conn,
		send: make(chan string, sendBuffer),
		done: make(chan struct{}),
		logger: logx.Logger().With().
			Str("client_id", id.String()).
			Str("room_code", room.Code).
			Logger(),
	}
}

// Deliver implements chat.DeliverySink. It never blocks: a full queue or a
// closed client reports failure, which the registry treats as a dead sink.
func (c *Client) Deliver(payload string) error {
	select {
	case <-c.done:
		return errors.New("client connection closed")
	default:
	}

	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return errors.New("client connection closed")
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping payload.")
		return fmt.Errorf("client send queue full")
	}
}

// Close signals both pumps to stop. Safe to call multiple times.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// ReadPump reads frames from the WebSocket connection until it closes.
// It handles Pong heartbeats, forwards chat frames to the room, and performs
// disconnect cleanup on exit, so the room never keeps a stale participant.
func (c *Client) ReadPump() {
	defer func() {
		c.Close()
		c.room.Disconnect(c.id)

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error.")
		}

		c.logger.Info().Msg("Client connection cleanup finished.")
	}()

	c.conn.SetReadLimit(maxInboundBytes)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline.")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Unexpected close reading message.")
			}
			break
		}

		c.handleInbound(frame)
	}
}

// handleInbound parses one inbound frame and forwards it as a message send.
// Frames that are not valid JSON are treated as bare content text.
func (c *Client) handleInbound(frame []byte) {
	var inbound InboundFrame
	if err := json.Unmarshal(frame, &inbound); err != nil {
		inbound.Content = string(frame)
	}

	if _, _, err := c.room.Send(c.id, inbound.Content); err != nil {
		c.logger.Warn().
			Int("code", errs.CodeOf(err)).
			Msg("Inbound message rejected.")
		c.sendError(err)
	}
}

// sendError pushes an error event to this client's own queue.
func (c *Client) sendError(err error) {
	code := errs.CodeOf(err)

	var message string
	var custom *errs.CustomError
	if errors.As(err, &custom) {
		message = custom.Message
	} else {
		message = "Internal server error."
	}

	raw, marshalErr := json.Marshal(ErrorEvent{
		Type:    EventError,
		Code:    code,
		Message: message,
	})
	if marshalErr != nil {
		c.logger.Error().Err(marshalErr).Msg("Failed to build error event.")
		return
	}

	if deliverErr := c.Deliver(string(raw)); deliverErr != nil {
		c.logger.Warn().Err(deliverErr).Msg("Failed to queue error event.")
	}
}

// WritePump drains the send queue onto the WebSocket connection and keeps
// the heartbeat alive. It owns all writes to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump.")
		}
	}()

	for {
		select {
		case payload := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline.")
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				c.logger.Info().Err(err).Msg("Error writing message.")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping.")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Info().Err(err).Msg("Error writing ping.")
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing close message.")
			}
			return
		}
	}
}

// Reject writes a close frame with a custom code and closes the connection.
// Used when the connect use case refuses the client after the upgrade. The
// caller must be the connection's only writer, so Reject is valid only
// before WritePump has been started.
func (c *Client) Reject(closeCode int, reason string) {
	c.logger.Warn().
		Int("close_code", closeCode).
		Str("reason", reason).
		Msg("Rejecting WebSocket connection.")

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	closeMessage := websocket.FormatCloseMessage(closeCode, reason)
	if err := c.conn.WriteMessage(websocket.CloseMessage, closeMessage); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to write rejection close frame.")
	}

	c.Close()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error after rejection.")
	}
}
