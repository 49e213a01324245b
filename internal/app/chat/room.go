/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the Room: one logical chat room composed of its own store,
delivery registry, and the three use cases wired over them. The store and
registry are explicitly owned, injected dependencies of the use cases, so any
number of rooms run as independent instances in the same process.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"parlor/internal/pkg/errs"
	"parlor/internal/pkg/logx"
)

// Room is a single chat room: participants, message history, and the fan-out
// machinery for one shared conversation.
type Room struct {
	// Code is the room's unique identifier.
	Code string

	// CreatedAt is the timestamp at which the room was created.
	CreatedAt Timestamp

	// Capacity is the maximum number of participants; 0 means unlimited.
	Capacity int

	store    RoomStore
	registry DeliveryRegistry
	clock    Clock

	connect    *ConnectUseCase
	send       *SendMessageUseCase
	disconnect *DisconnectUseCase

	// mu protects empty, emptySince, and closed.
	mu sync.Mutex

	// empty reports whether the room currently has no participants;
	// emptySince records when it last became (or started) empty.
	empty      bool
	emptySince Timestamp

	// closed is set when the room is disposed; a closed room refuses
	// every further Connect.
	closed bool

	// structured logger with room context.
	logger zerolog.Logger
}

// NewRoom creates a Room with its own store and registry.
// capacity bounds the participant set (0 = unlimited); renderer and clock are
// shared collaborator capabilities injected by the composition root.
func NewRoom(code string, capacity int, renderer EventRenderer, clock Clock) *Room {
	logger := logx.Logger().With().
		Str("room_code", code).
		Logger()

	store := NewMemoryRoomStore(capacity)
	registry := NewMemoryDeliveryRegistry()
	now := clock.Now()

	return &Room{
		Code:       code,
		CreatedAt:  now,
		Capacity:   capacity,
		store:      store,
		registry:   registry,
		clock:      clock,
		connect:    NewConnectUseCase(store, registry, renderer, logger),
		send:       NewSendMessageUseCase(store, registry, renderer, clock, logger),
		disconnect: NewDisconnectUseCase(store, registry, renderer, logger),
		empty:      true,
		emptySince: now,
		logger:     logger,
	}
}

// Connect admits a new client with its delivery sink. It fails with
// ErrRoomNotFound once the room has been disposed; a caller holding a stale
// handle can never join a room the manager no longer tracks.
// See ConnectUseCase.Execute for the rest of the contract.
func (r *Room) Connect(id ClientID, sink DeliverySink) ([]Participant, []DeliveryFailure, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, nil, errs.NewError(errs.ErrRoomNotFound)
	}
	r.mu.Unlock()

	roster, failures, err := r.connect.Execute(id, sink, r.clock.Now())
	if err != nil {
		return nil, failures, err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		// Disposal won the race between admission and here; undo the
		// admission so no participant is stranded in a dead room.
		r.disconnect.Execute(id, r.clock.Now())
		return nil, nil, errs.NewError(errs.ErrRoomNotFound)
	}
	r.empty = false
	r.mu.Unlock()

	return roster, failures, nil
}

// Send appends a message from sender and broadcasts it to everyone else.
// See SendMessageUseCase.Execute for the contract.
func (r *Room) Send(sender ClientID, text string) (Message, []DeliveryFailure, error) {
	return r.send.Execute(sender, text)
}

// Disconnect removes a client. It is idempotent and never errors; the
// returned bool reports whether room state actually changed.
func (r *Room) Disconnect(id ClientID) bool {
	changed, _ := r.disconnect.Execute(id, r.clock.Now())

	if changed && r.store.ParticipantCount() == 0 {
		r.mu.Lock()
		if !r.empty {
			r.empty = true
			r.emptySince = r.clock.Now()
		}
		r.mu.Unlock()
	}

	return changed
}

// Participants returns a snapshot of the current roster, sorted by client id.
func (r *Room) Participants() []Participant {
	return r.store.Participants()
}

// ParticipantCount returns the number of connected participants.
func (r *Room) ParticipantCount() int {
	return r.store.ParticipantCount()
}

// Messages returns a snapshot of the room's message history in append order.
func (r *Room) Messages() []Message {
	return r.store.Messages()
}

// IsFull reports whether the room reached its participant capacity.
// Connect re-checks atomically; this is advisory for the transport layer.
func (r *Room) IsFull() bool {
	return r.Capacity > 0 && r.store.ParticipantCount() >= r.Capacity
}

// EmptySince returns the timestamp at which the room became empty, and
// whether it is currently empty.
func (r *Room) EmptySince() (Timestamp, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.emptySince, r.empty
}

// Dispose marks the room closed so no further Connect succeeds. It refuses
// to close a room that still has participants and reports whether the room
// is closed afterwards.
func (r *Room) Dispose() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return true
	}

	if r.store.ParticipantCount() > 0 {
		return false
	}

	r.closed = true
	return true
}
