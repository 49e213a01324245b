package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"parlor/internal/pkg/errs"
)

func TestNewClientID_Valid(t *testing.T) {
	req := require.New(t)

	id, err := NewClientID("alice")

	req.NoError(err)
	req.Equal("alice", id.String())
}

func TestNewClientID_Empty(t *testing.T) {
	req := require.New(t)

	_, err := NewClientID("")

	req.Error(err)
	req.True(errs.Is(err, errs.ErrInvalidClientID))
}

func TestNewClientID_TooLong(t *testing.T) {
	req := require.New(t)

	_, err := NewClientID(strings.Repeat("a", MaxClientIDChars+1))

	req.Error(err)
	req.True(errs.Is(err, errs.ErrInvalidClientID))
}

func TestNewClientID_AtBound(t *testing.T) {
	req := require.New(t)

	id, err := NewClientID(strings.Repeat("a", MaxClientIDChars))

	req.NoError(err)
	req.Len(id.String(), MaxClientIDChars)
}

func TestClientID_EqualityByValue(t *testing.T) {
	req := require.New(t)

	a1, _ := NewClientID("alice")
	a2, _ := NewClientID("alice")
	b, _ := NewClientID("bob")

	req.Equal(a1, a2)
	req.NotEqual(a1, b)
}

func TestNewMessageContent_Valid(t *testing.T) {
	req := require.New(t)

	content, err := NewMessageContent("Hello, world!")

	req.NoError(err)
	req.Equal("Hello, world!", content.String())
}

func TestNewMessageContent_Empty(t *testing.T) {
	req := require.New(t)

	_, err := NewMessageContent("")

	req.Error(err)
	req.True(errs.Is(err, errs.ErrInvalidContent))
}

func TestNewMessageContent_TooLong(t *testing.T) {
	req := require.New(t)

	_, err := NewMessageContent(strings.Repeat("a", MaxContentChars+1))

	req.Error(err)
	req.True(errs.Is(err, errs.ErrInvalidContent))
}

func TestNewMessageContent_BoundCountsRunesNotBytes(t *testing.T) {
	req := require.New(t)

	// Multibyte runes: exactly MaxContentChars characters must pass even
	// though the byte length is larger.
	_, err := NewMessageContent(strings.Repeat("é", MaxContentChars))
	req.NoError(err)

	_, err = NewMessageContent(strings.Repeat("é", MaxContentChars+1))
	req.True(errs.Is(err, errs.ErrInvalidContent))
}

func TestTimestamp_Conversions(t *testing.T) {
	req := require.New(t)

	ts := Timestamp(1672498800000)

	req.Equal(int64(1672498800000), ts.Millis())
	req.Equal(time.UnixMilli(1672498800000).UTC(), ts.Time())
	req.Equal("2022-12-31T15:00:00Z", ts.RFC3339())
}

func TestTimestamp_Ordering(t *testing.T) {
	req := require.New(t)

	req.Less(Timestamp(1000), Timestamp(2000))
}

func TestSystemClock_ProducesCurrentMillis(t *testing.T) {
	req := require.New(t)

	before := time.Now().UnixMilli()
	now := SystemClock().Now().Millis()
	after := time.Now().UnixMilli()

	req.GreaterOrEqual(now, before)
	req.LessOrEqual(now, after)
}
