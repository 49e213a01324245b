/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the two entities the room store owns: the Participant
record created on connect, and the immutable Message appended to the room's
history on every successful send.
*/
package chat

// Participant records one currently-connected client within a room.
// Participants are owned exclusively by the room store; callers only ever
// see copies.
type Participant struct {
	// ID is the client identifier of the participant.
	ID ClientID

	// JoinedAt is the timestamp at which the participant connected.
	JoinedAt Timestamp
}

// Message is one entry in a room's append-only history.
// Once appended it is immutable and never removed for the lifetime of the
// room instance.
type Message struct {
	// ID uniquely identifies the message (UUID).
	ID string

	// Sender is the client id of the participant that sent the message.
	Sender ClientID

	// Content is the validated message text.
	Content MessageContent

	// SentAt is the timestamp at which the message was appended.
	SentAt Timestamp
}
