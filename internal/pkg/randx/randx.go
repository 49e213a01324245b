/*
Package randx provides cryptographically secure random identifiers.

It generates fixed-length Base62 room codes and UUID message identifiers.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the character set used for Base62 encoding.
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// RoomCodeLength is the fixed length of generated room codes.
	RoomCodeLength = 6
)

// RoomCode generates a Base62 room code of RoomCodeLength characters using
// crypto/rand.
func RoomCode() (string, error) {
	result := make([]byte, RoomCodeLength)

	for i := 0; i < RoomCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Base62Chars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for room code: %w", err)
		}
		result[i] = Base62Chars[n.Int64()]
	}

	return string(result), nil
}

// MessageID generates a UUID v4 string identifying a single message.
func MessageID() string {
	return uuid.New().String()
}

// IsValidRoomCode reports whether code has the right length and contains
// only Base62 characters.
func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}

	for _, r := range code {
		if !strings.ContainsRune(Base62Chars, r) {
			return false
		}
	}

	return true
}
