package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

type MessageResponse struct {
	ID        uuid.UUID   `json:"id"`
	RoomID    string      `json:"room_id"`
	Sender    domain.Role `json:"sender"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

func MessagesToApi(msgs []*domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageToApi(m))
	}
	return out
}

func MessageToApi(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Sender:    m.Sender,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

type NoteResponse struct {
	ID         uuid.UUID   `json:"id"`
	RoomID     string      `json:"room_id"`
	Sender     domain.Role `json:"sender"`
	Text       string      `json:"text,omitempty"`
	Sealed     bool        `json:"sealed"`
	Revealed   bool        `json:"revealed"`
	RevealedAt *time.Time  `json:"revealed_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NoteToApi renders a note as viewer sees it.
func NoteToApi(n *domain.Note, viewer domain.Role) NoteResponse {
	view := n.ViewFor(viewer)
	return NoteResponse{
		ID:         view.ID,
		RoomID:     view.RoomID,
		Sender:     view.Sender,
		Text:       view.Text,
		Sealed:     n.SealedFor(viewer),
		Revealed:   view.Revealed,
		RevealedAt: view.RevealedAt,
		CreatedAt:  view.CreatedAt,
	}
}

func NotesToApi(notes []*domain.Note, viewer domain.Role) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteToApi(n, viewer))
	}
	return out
}
