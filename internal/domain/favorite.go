package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a title a participant has marked as a movie night candidate.
// At most one favorite exists per (room, media id, media type).
type Favorite struct {
	ID         uuid.UUID
	RoomID     string
	Role       Role
	MediaID    string
	MediaType  MediaType
	Title      string
	PosterPath string
	Rating     *float64
	CreatedAt  time.Time
}

func NewFavorite(roomID string, role Role, media Media) *Favorite {
	return &Favorite{
		ID:         uuid.New(),
		RoomID:     roomID,
		Role:       role,
		MediaID:    media.ID,
		MediaType:  media.Type,
		Title:      media.Title,
		PosterPath: media.PosterPath,
		Rating:     media.Rating,
		CreatedAt:  time.Now().UTC(),
	}
}

func (f *Favorite) Ref() MediaRef {
	return MediaRef{ID: f.MediaID, Type: f.MediaType}
}
