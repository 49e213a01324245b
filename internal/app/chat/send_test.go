package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"parlor/internal/pkg/errs"
)

func TestSend_BroadcastExcludesSender(t *testing.T) {
	req := require.New(t)
	room, clock := newTestRoom(0)

	alice := &recordingSink{}
	bob := &recordingSink{}
	carol := &recordingSink{}

	_, _, err := room.Connect("alice", alice)
	req.NoError(err)
	_, _, err = room.Connect("bob", bob)
	req.NoError(err)
	_, _, err = room.Connect("carol", carol)
	req.NoError(err)

	clock.Advance(500)
	msg, failures, err := room.Send("alice", "hello everyone")

	req.NoError(err)
	req.Empty(failures)
	req.NotEmpty(msg.ID)
	req.Equal(Timestamp(1500), msg.SentAt)

	want := "chat:alice:hello everyone:1500"
	req.Contains(bob.Payloads(), want)
	req.Contains(carol.Payloads(), want)
	req.NotContains(alice.Payloads(), want)
}

func TestSend_InvalidContentFailsBeforeState(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	_, _, err := room.Connect("alice", &recordingSink{})
	req.NoError(err)

	_, _, err = room.Send("alice", "")
	req.True(errs.Is(err, errs.ErrInvalidContent))

	_, _, err = room.Send("alice", strings.Repeat("a", MaxContentChars+1))
	req.True(errs.Is(err, errs.ErrInvalidContent))

	// Neither rejection touched the log.
	req.Empty(room.Messages())
}

func TestSend_SenderNotParticipant(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	_, _, err := room.Send("ghost", "boo")

	req.Error(err)
	req.True(errs.Is(err, errs.ErrSenderNotParticipant))
	req.Empty(room.Messages())
}

func TestSend_AppendIsDurableDespiteDeliveryFailures(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	_, _, err := room.Connect("alice", &recordingSink{})
	req.NoError(err)
	_, _, err = room.Connect("bob", deadSink{})
	req.NoError(err)

	msg, failures, err := room.Send("alice", "still recorded")

	req.NoError(err)
	req.Len(failures, 1)
	req.Equal(ClientID("bob"), failures[0].ClientID)

	log := room.Messages()
	req.Len(log, 1)
	req.Equal(msg, log[0])
}

func TestSend_MessagesAccumulateInOrder(t *testing.T) {
	req := require.New(t)
	room, clock := newTestRoom(0)

	_, _, err := room.Connect("alice", &recordingSink{})
	req.NoError(err)
	_, _, err = room.Connect("bob", &recordingSink{})
	req.NoError(err)

	_, _, err = room.Send("alice", "first")
	req.NoError(err)
	clock.Advance(100)
	_, _, err = room.Send("bob", "second")
	req.NoError(err)

	log := room.Messages()
	req.Len(log, 2)
	req.Equal(MessageContent("first"), log[0].Content)
	req.Equal(MessageContent("second"), log[1].Content)
	req.Less(log[0].SentAt, log[1].SentAt)
}
