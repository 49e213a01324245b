package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"parlor/internal/pkg/errs"
)

func TestConnect_FirstParticipant(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)
	alice := &recordingSink{}

	roster, failures, err := room.Connect("alice", alice)

	req.NoError(err)
	req.Empty(failures)
	req.Len(roster, 1)
	req.Equal(ClientID("alice"), roster[0].ID)
	req.Equal(Timestamp(1000), roster[0].JoinedAt)

	// Nobody else to announce to, including the new participant itself.
	req.Empty(alice.Payloads())
}

func TestConnect_RosterIncludesEarlierParticipants(t *testing.T) {
	req := require.New(t)
	room, clock := newTestRoom(0)

	_, _, err := room.Connect("alice", &recordingSink{})
	req.NoError(err)

	clock.Advance(500)
	roster, _, err := room.Connect("bob", &recordingSink{})
	req.NoError(err)

	req.Len(roster, 2)
	req.Equal(ClientID("alice"), roster[0].ID)
	req.Equal(Timestamp(1000), roster[0].JoinedAt)
	req.Equal(ClientID("bob"), roster[1].ID)
	req.Equal(Timestamp(1500), roster[1].JoinedAt)
}

func TestConnect_JoinBroadcastExcludesSelf(t *testing.T) {
	req := require.New(t)
	room, clock := newTestRoom(0)

	alice := &recordingSink{}
	bob := &recordingSink{}

	_, _, err := room.Connect("alice", alice)
	req.NoError(err)

	clock.Advance(500)
	_, _, err = room.Connect("bob", bob)
	req.NoError(err)

	req.Equal([]string{"joined:bob:1500"}, alice.Payloads())
	req.Empty(bob.Payloads())
}

func TestConnect_DuplicateKeepsOriginalSession(t *testing.T) {
	req := require.New(t)
	room, clock := newTestRoom(0)

	alice := &recordingSink{}
	_, _, err := room.Connect("alice", alice)
	req.NoError(err)

	clock.Advance(500)
	_, _, err = room.Connect("alice", &recordingSink{})

	req.Error(err)
	req.True(errs.Is(err, errs.ErrDuplicateClient))

	// The original session still works: it receives later broadcasts.
	req.Equal(1, room.ParticipantCount())
	req.Equal(Timestamp(1000), room.Participants()[0].JoinedAt)

	_, _, err = room.Connect("bob", &recordingSink{})
	req.NoError(err)
	req.Equal([]string{"joined:bob:1500"}, alice.Payloads())
}

func TestConnect_RoomFull(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(1)

	_, _, err := room.Connect("alice", &recordingSink{})
	req.NoError(err)

	_, _, err = room.Connect("bob", &recordingSink{})

	req.Error(err)
	req.True(errs.Is(err, errs.ErrRoomIsFull))
	req.Equal(1, room.ParticipantCount())
}

func TestConnect_RollbackOnRegistrationFailure(t *testing.T) {
	req := require.New(t)
	store := NewMemoryRoomStore(0)
	registry := NewMemoryDeliveryRegistry()
	uc := NewConnectUseCase(store, registry, textRenderer{}, zerolog.Nop())

	// A sink already registered under the id makes Register fail while the
	// store insert succeeds, exercising the rollback path.
	req.NoError(registry.Register("alice", &recordingSink{}))

	_, _, err := uc.Execute("alice", &recordingSink{}, 1000)

	req.Error(err)
	req.True(errs.Is(err, errs.ErrDuplicateClient))
	req.Equal(0, store.ParticipantCount())
}

func TestConnect_DeliveryFailureIsNonFatal(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	_, _, err := room.Connect("alice", deadSink{})
	req.NoError(err)

	roster, failures, err := room.Connect("bob", &recordingSink{})

	// alice's dead sink fails the joined broadcast but bob is connected.
	req.NoError(err)
	req.Len(roster, 2)
	req.Len(failures, 1)
	req.Equal(ClientID("alice"), failures[0].ClientID)
	req.Equal(errs.ErrDeliveryClosed, failures[0].Err.Code)
}

func TestConnect_ConcurrentSameID_ExactlyOneWins(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	const workers = 16
	var wg sync.WaitGroup
	errsCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := room.Connect("carol", &recordingSink{})
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	var successes, duplicates int
	for err := range errsCh {
		if err == nil {
			successes++
		} else if errs.Is(err, errs.ErrDuplicateClient) {
			duplicates++
		}
	}

	req.Equal(1, successes)
	req.Equal(workers-1, duplicates)
	req.Equal(1, room.ParticipantCount())
}

func TestConnect_ConcurrentDistinctIDs(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	const workers = 16
	var wg sync.WaitGroup
	errsCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := ClientID(fmt.Sprintf("client-%02d", n))
			_, _, err := room.Connect(id, &recordingSink{})
			errsCh <- err
		}(i)
	}
	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		req.NoError(err)
	}
	req.Equal(workers, room.ParticipantCount())
}
