package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// GenerateRoomCode - generates a short numeric identifier for a room.
// Uniqueness across live rooms is the registry's job.
func GenerateRoomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(99999999))
	if err != nil {
		return ""
	}

	return n.String()
}

// GenerateSessionID - generates a new unique player session ID.
func GenerateSessionID() string {
	return uuid.NewString()
}
