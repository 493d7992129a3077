package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

type TimelineEntryResponse struct {
	ID        uuid.UUID                `json:"id"`
	RoomID    string                   `json:"room_id"`
	EventType domain.TimelineEventType `json:"event_type"`
	Role      domain.Role              `json:"role,omitempty"`
	MediaID   string                   `json:"media_id,omitempty"`
	MediaType domain.MediaType         `json:"media_type,omitempty"`
	Title     string                   `json:"title,omitempty"`
	Message   string                   `json:"message,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

func TimelineToApi(entries []*domain.TimelineEntry) []TimelineEntryResponse {
	out := make([]TimelineEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TimelineEntryToApi(e))
	}
	return out
}

func TimelineEntryToApi(e *domain.TimelineEntry) TimelineEntryResponse {
	return TimelineEntryResponse{
		ID:        e.ID,
		RoomID:    e.RoomID,
		EventType: e.EventType,
		Role:      e.Role,
		MediaID:   e.MediaID,
		MediaType: e.MediaType,
		Title:     e.Title,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}
