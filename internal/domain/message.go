package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxMessageLength = 4000

// Message is a shared chat line visible to both participants.
type Message struct {
	ID        uuid.UUID
	RoomID    string
	Sender    Role
	Text      string
	CreatedAt time.Time
}

func NewMessage(roomID string, sender Role, text string) (*Message, error) {
	text, err := normalizeText(text)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Note is a private romantic note. The partner sees it sealed until they
// reveal it; Revealed is the only field that changes after creation.
type Note struct {
	ID         uuid.UUID
	RoomID     string
	Sender     Role
	Text       string
	Revealed   bool
	RevealedAt *time.Time
	CreatedAt  time.Time
}

func NewNote(roomID string, sender Role, text string) (*Note, error) {
	text, err := normalizeText(text)
	if err != nil {
		return nil, err
	}
	return &Note{
		ID:        uuid.New(),
		RoomID:    roomID,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Recipient is the participant the note was written for.
func (n *Note) Recipient() Role {
	return n.Sender.Partner()
}

// SealedFor reports whether viewer must not see the note's text yet. Only the
// sender reads an unrevealed note.
func (n *Note) SealedFor(viewer Role) bool {
	return n.Sender != viewer && !n.Revealed
}

// ViewFor returns a copy of the note with the text removed when it is sealed
// for viewer.
func (n *Note) ViewFor(viewer Role) *Note {
	view := *n
	if n.SealedFor(viewer) {
		view.Text = ""
	}
	return &view
}

func normalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewValidationError("message", "is required")
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return "", NewValidationError("message", "is too long")
	}
	return text, nil
}
