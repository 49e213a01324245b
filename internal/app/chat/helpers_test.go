package chat

import (
	"errors"
	"fmt"
	"sync"
)

// fakeClock is a deterministic Clock for tests.
type fakeClock struct {
	mu  sync.Mutex
	now Timestamp
}

func newFakeClock(start int64) *fakeClock {
	return &fakeClock{now: Timestamp(start)}
}

func (c *fakeClock) Now() Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += Timestamp(ms)
}

// recordingSink collects every delivered payload.
type recordingSink struct {
	mu       sync.Mutex
	payloads []string
}

func (s *recordingSink) Deliver(payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *recordingSink) Payloads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.payloads))
	copy(out, s.payloads)
	return out
}

// deadSink rejects every delivery, as a closed transport would.
type deadSink struct{}

func (deadSink) Deliver(string) error {
	return errors.New("connection closed")
}

// textRenderer renders events as plain strings so tests can assert on the
// exact payload each sink received.
type textRenderer struct{}

func (textRenderer) RenderJoined(p Participant) (string, error) {
	return fmt.Sprintf("joined:%s:%d", p.ID, p.JoinedAt.Millis()), nil
}

func (textRenderer) RenderLeft(id ClientID, at Timestamp) (string, error) {
	return fmt.Sprintf("left:%s:%d", id, at.Millis()), nil
}

func (textRenderer) RenderMessage(m Message) (string, error) {
	return fmt.Sprintf("chat:%s:%s:%d", m.Sender, m.Content, m.SentAt.Millis()), nil
}

// newTestRoom builds a room with the text renderer and a fake clock.
func newTestRoom(capacity int) (*Room, *fakeClock) {
	clock := newFakeClock(1000)
	return NewRoom("test01", capacity, textRenderer{}, clock), clock
}
