package domain

import (
	"strings"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	roomIDLength   = 8
	roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var roomIDGenerator = mustRoomIDGenerator()

// Room is the isolation unit shared by the two participants. It is created once
// and never deleted; favorites, votes, messages and notes reference it by ID.
type Room struct {
	ID        string
	CreatedAt time.Time
}

// NewRoom constructs a room with a freshly generated token.
func NewRoom() *Room {
	return NewRoomWithID(GenerateRoomID())
}

// NewRoomWithID constructs a room for a token the client already holds.
func NewRoomWithID(id string) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
}

// GenerateRoomID returns a short lowercase alphanumeric room token.
func GenerateRoomID() string {
	return roomIDGenerator()
}

// NormalizeRoomID trims and lowercases a client supplied token and rejects
// anything outside the token alphabet.
func NormalizeRoomID(id string) (string, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", NewValidationError("room_id", "is required")
	}
	if len(id) > 64 {
		return "", NewValidationError("room_id", "is too long")
	}
	for _, r := range id {
		if !strings.ContainsRune(roomIDAlphabet, r) {
			return "", NewValidationError("room_id", "must be alphanumeric")
		}
	}
	return id, nil
}

func mustRoomIDGenerator() func() string {
	gen, err := nanoid.CustomASCII(roomIDAlphabet, roomIDLength)
	if err != nil {
		panic("room id generator: " + err.Error())
	}
	return gen
}
