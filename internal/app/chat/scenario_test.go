package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRoom_TwoParticipantConversation walks one full session: two clients
// join, exchange messages, and one leaves, asserting exactly what each sink
// received at every step.
func TestRoom_TwoParticipantConversation(t *testing.T) {
	req := require.New(t)
	room, clock := newTestRoom(0)

	alice := &recordingSink{}
	bob := &recordingSink{}

	// Alice connects to an empty room.
	roster, failures, err := room.Connect("alice", alice)
	req.NoError(err)
	req.Empty(failures)
	req.Len(roster, 1)
	req.Empty(alice.Payloads())

	// Bob connects; Alice is told, Bob is not echoed his own join.
	clock.Advance(100)
	roster, failures, err = room.Connect("bob", bob)
	req.NoError(err)
	req.Empty(failures)
	req.Len(roster, 2)
	req.Equal([]string{"joined:bob:1100"}, alice.Payloads())
	req.Empty(bob.Payloads())

	// Alice greets; only Bob receives it.
	clock.Advance(100)
	msg1, failures, err := room.Send("alice", "Hello, Bob!")
	req.NoError(err)
	req.Empty(failures)
	req.Equal([]string{"chat:alice:Hello, Bob!:1200"}, bob.Payloads())
	req.Equal([]string{"joined:bob:1100"}, alice.Payloads())

	// Bob replies; only Alice receives it.
	clock.Advance(100)
	msg2, failures, err := room.Send("bob", "Hi, Alice!")
	req.NoError(err)
	req.Empty(failures)
	req.Equal([]string{"joined:bob:1100", "chat:bob:Hi, Alice!:1300"}, alice.Payloads())

	// Alice leaves; Bob is told.
	clock.Advance(100)
	req.True(room.Disconnect("alice"))
	req.Equal([]string{"chat:alice:Hello, Bob!:1200", "left:alice:1400"}, bob.Payloads())

	// The room retains the full conversation and only Bob.
	req.Equal(1, room.ParticipantCount())
	req.Equal(ClientID("bob"), room.Participants()[0].ID)

	log := room.Messages()
	req.Equal([]Message{msg1, msg2}, log)

	// Alice can no longer speak, Bob still can.
	_, _, err = room.Send("alice", "anyone there?")
	req.Error(err)

	_, _, err = room.Send("bob", "talking to myself")
	req.NoError(err)
	req.Len(room.Messages(), 3)
}
