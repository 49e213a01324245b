package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError_KnownCode(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrRoomNotFound)

	req.Equal(ErrRoomNotFound, err.Code)
	req.Equal("Room not found.", err.Message)
	req.Equal(http.StatusNotFound, err.Status)
}

func TestNewError_TemplatedMessage(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrDuplicateClient, "alice")

	req.Equal("Client 'alice' is already connected.", err.Message)

	// The shared template must stay pristine for the next caller.
	req.Equal("Client '%s' is already connected.", errorMap[ErrDuplicateClient].Message)
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	req := require.New(t)

	err := NewError(99999)

	req.Equal(ErrUnknown, err.Code)
	req.Equal(http.StatusInternalServerError, err.Status)
}

func TestError_Format(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrRoomIsFull)

	req.Equal("Error Code 2103 (HTTP 503): This room is full.", err.Error())
}

func TestIs(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrRoomIsFull)

	req.True(Is(err, ErrRoomIsFull))
	req.False(Is(err, ErrRoomNotFound))
	req.False(Is(nil, ErrRoomIsFull))
	req.False(Is(fmt.Errorf("plain"), ErrRoomIsFull))
}

func TestIs_WrappedError(t *testing.T) {
	req := require.New(t)

	wrapped := fmt.Errorf("connecting: %w", NewError(ErrDuplicateClient, "alice"))

	req.True(Is(wrapped, ErrDuplicateClient))
}

func TestCodeOf(t *testing.T) {
	req := require.New(t)

	req.Equal(ErrRoomNotFound, CodeOf(NewError(ErrRoomNotFound)))
	req.Equal(ErrUnknown, CodeOf(fmt.Errorf("plain")))
}
