package domain

import (
	"time"

	"github.com/google/uuid"
)

type TimelineEventType string

const (
	TimelineFavoriteAdded TimelineEventType = "favorite_added"
	TimelineVoteCast      TimelineEventType = "vote_cast"
	TimelineWatched       TimelineEventType = "watched"
)

// TimelineEntry is an append-only record of something that happened in a room.
type TimelineEntry struct {
	ID        uuid.UUID
	RoomID    string
	EventType TimelineEventType
	Role      Role
	MediaID   string
	MediaType MediaType
	Title     string
	Message   string
	CreatedAt time.Time
}

func NewTimelineEntry(roomID string, eventType TimelineEventType, role Role, media Media, message string) *TimelineEntry {
	return &TimelineEntry{
		ID:        uuid.New(),
		RoomID:    roomID,
		EventType: eventType,
		Role:      role,
		MediaID:   media.ID,
		MediaType: media.Type,
		Title:     media.Title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
