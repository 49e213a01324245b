/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the validated value types the rest of the package is built
on: client identifiers, message content, and timestamps, plus the injected
clock capability that keeps timestamp production out of the core logic.
*/
package chat

import (
	"time"
	"unicode/utf8"

	"parlor/internal/pkg/errs"
)

const (
	// MaxClientIDChars is the maximum accepted length of a client identifier.
	MaxClientIDChars = 100

	// MaxContentChars is the maximum accepted length of message content.
	MaxContentChars = 10000
)

// ClientID is an opaque, stable identifier for one connected client.
// It is assigned by the transport that accepts the connection, never by the
// core. Two ClientIDs are equal when their string values are equal.
type ClientID string

// NewClientID validates raw and returns it as a ClientID.
// It fails with ErrInvalidClientID when raw is empty or over the bound.
func NewClientID(raw string) (ClientID, error) {
	if raw == "" || utf8.RuneCountInString(raw) > MaxClientIDChars {
		return "", errs.NewError(errs.ErrInvalidClientID, MaxClientIDChars)
	}
	return ClientID(raw), nil
}

// String returns the identifier's raw value.
func (id ClientID) String() string {
	return string(id)
}

// MessageContent is validated, immutable chat message text.
type MessageContent string

// NewMessageContent validates raw and returns it as MessageContent.
// It fails with ErrInvalidContent when raw is empty or over the bound.
func NewMessageContent(raw string) (MessageContent, error) {
	if raw == "" || utf8.RuneCountInString(raw) > MaxContentChars {
		return "", errs.NewError(errs.ErrInvalidContent, MaxContentChars)
	}
	return MessageContent(raw), nil
}

// String returns the content's raw text.
func (c MessageContent) String() string {
	return string(c)
}

// Timestamp is a wall-clock instant in milliseconds since the Unix epoch.
type Timestamp int64

// Millis returns the raw millisecond value.
func (t Timestamp) Millis() int64 {
	return int64(t)
}

// Time converts the timestamp to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// RFC3339 renders the timestamp as an RFC 3339 string in UTC.
func (t Timestamp) RFC3339() string {
	return t.Time().Format(time.RFC3339)
}

// Clock produces timestamps for the core. It is injected everywhere a
// timestamp is needed so tests can supply deterministic values.
type Clock interface {
	Now() Timestamp
}

type systemClock struct{}

func (systemClock) Now() Timestamp {
	return Timestamp(time.Now().UnixMilli())
}

// SystemClock returns a Clock backed by the operating system clock.
func SystemClock() Clock {
	return systemClock{}
}
