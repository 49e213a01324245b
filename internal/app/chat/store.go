/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the RoomStore: the authoritative, concurrency-safe holder
of one room's participant set and message log. Every operation runs inside a
single critical section, so no caller ever observes a partially-applied
mutation. Implementations are selected at composition time; MemoryRoomStore
is the in-process variant.
*/
package chat

import (
	"sort"
	"sync"

	"parlor/internal/pkg/errs"
	"parlor/internal/pkg/randx"
)

// RoomStore holds one room's participants and message log and serializes
// all mutations. It is the single source of truth for room membership.
type RoomStore interface {
	// AddParticipant inserts a new participant. It fails with
	// ErrDuplicateClient if id is already present and with ErrRoomIsFull if
	// the store was created with a capacity that is already reached.
	AddParticipant(id ClientID, joinedAt Timestamp) error

	// RemoveParticipant removes id from the participant set. It fails with
	// ErrParticipantNotFound if absent; callers must treat that as
	// "already gone", not as a fatal condition.
	RemoveParticipant(id ClientID) error

	// AppendMessage appends a message to the room log and returns the stored
	// message. It fails with ErrSenderNotParticipant if sender is not
	// currently a participant.
	AppendMessage(sender ClientID, content MessageContent, sentAt Timestamp) (Message, error)

	// Participants returns a snapshot of the participant set, sorted by
	// client id. Mutating the returned slice does not affect the store.
	Participants() []Participant

	// ParticipantCount returns the current number of participants.
	ParticipantCount() int

	// Messages returns a snapshot of the message log in append order.
	Messages() []Message
}

// MemoryRoomStore is the in-memory RoomStore implementation.
// A single mutex guards both the participant set and the message log, which
// makes every operation atomic and the operation history linearizable.
type MemoryRoomStore struct {
	// mu serializes all store operations.
	mu sync.RWMutex

	// participants holds the current members, keyed by client id.
	participants map[ClientID]Participant

	// messages is the append-only room history.
	messages []Message

	// capacity bounds the participant set; 0 means unlimited.
	capacity int
}

// NewMemoryRoomStore creates an empty MemoryRoomStore.
// capacity bounds the number of participants; pass 0 for no limit.
func NewMemoryRoomStore(capacity int) *MemoryRoomStore {
	return &MemoryRoomStore{
		participants: make(map[ClientID]Participant),
		capacity:     capacity,
	}
}

// AddParticipant implements RoomStore.
func (s *MemoryRoomStore) AddParticipant(id ClientID, joinedAt Timestamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[id]; ok {
		return errs.NewError(errs.ErrDuplicateClient, id)
	}

	if s.capacity > 0 && len(s.participants) >= s.capacity {
		return errs.NewError(errs.ErrRoomIsFull)
	}

	s.participants[id] = Participant{ID: id, JoinedAt: joinedAt}
	return nil
}

// RemoveParticipant implements RoomStore.
func (s *MemoryRoomStore) RemoveParticipant(id ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[id]; !ok {
		return errs.NewError(errs.ErrParticipantNotFound, id)
	}

	delete(s.participants, id)
	return nil
}

// AppendMessage implements RoomStore.
func (s *MemoryRoomStore) AppendMessage(sender ClientID, content MessageContent, sentAt Timestamp) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[sender]; !ok {
		return Message{}, errs.NewError(errs.ErrSenderNotParticipant, sender)
	}

	msg := Message{
		ID:      randx.MessageID(),
		Sender:  sender,
		Content: content,
		SentAt:  sentAt,
	}
	s.messages = append(s.messages, msg)

	return msg, nil
}

// Participants implements RoomStore.
func (s *MemoryRoomStore) Participants() []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Participant, 0, len(s.participants))
	for _, p := range s.participants {
		snapshot = append(snapshot, p)
	}

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].ID < snapshot[j].ID
	})

	return snapshot
}

// ParticipantCount implements RoomStore.
func (s *MemoryRoomStore) ParticipantCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.participants)
}

// Messages implements RoomStore.
func (s *MemoryRoomStore) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Message, len(s.messages))
	copy(snapshot, s.messages)

	return snapshot
}
