package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRoomCode(t *testing.T) {
	req := require.New(t)

	code, err := RoomCode()

	req.NoError(err)
	req.Len(code, RoomCodeLength)
	req.True(IsValidRoomCode(code))
}

func TestRoomCode_Distribution(t *testing.T) {
	req := require.New(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := RoomCode()
		req.NoError(err)
		seen[code] = true
	}

	// 100 draws from a 62^6 space must not collide.
	req.Len(seen, 100)
}

func TestIsValidRoomCode(t *testing.T) {
	cases := []struct {
		name string
		code string
		want bool
	}{
		{"valid mixed case", "aB3xY9", true},
		{"valid digits", "000000", true},
		{"too short", "aB3", false},
		{"too long", "aB3xY9z", false},
		{"empty", "", false},
		{"illegal character", "aB3xY!", false},
		{"non ascii", "aB3xYé", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsValidRoomCode(tc.code))
		})
	}
}

func TestMessageID(t *testing.T) {
	req := require.New(t)

	id := MessageID()

	parsed, err := uuid.Parse(id)
	req.NoError(err)
	req.Equal(uuid.Version(4), parsed.Version())

	req.NotEqual(id, MessageID())
}
