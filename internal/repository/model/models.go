package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID        string          `gorm:"size:64;primaryKey"`
	CreatedAt time.Time       `gorm:"not null"`
	Favorites []Favorite      `gorm:"constraint:OnDelete:CASCADE"`
	Votes     []Vote          `gorm:"constraint:OnDelete:CASCADE"`
	Messages  []Message       `gorm:"constraint:OnDelete:CASCADE"`
	Notes     []Note          `gorm:"constraint:OnDelete:CASCADE"`
	Timeline  []TimelineEntry `gorm:"constraint:OnDelete:CASCADE"`
}

type Favorite struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID     string    `gorm:"size:64;not null;index;uniqueIndex:idx_favorites_room_media,priority:1"`
	Role       string    `gorm:"size:32;not null"`
	MediaID    string    `gorm:"size:64;not null;uniqueIndex:idx_favorites_room_media,priority:2"`
	MediaType  string    `gorm:"size:16;not null;uniqueIndex:idx_favorites_room_media,priority:3"`
	Title      string    `gorm:"size:512;not null"`
	PosterPath string    `gorm:"size:512"`
	Rating     *float64
	CreatedAt  time.Time `gorm:"not null;index"`
}

type Vote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID      string    `gorm:"size:64;not null;index;uniqueIndex:idx_votes_room_voter_period,priority:1"`
	Voter       string    `gorm:"size:32;not null;uniqueIndex:idx_votes_room_voter_period,priority:2"`
	MediaID     string    `gorm:"size:64;not null"`
	MediaType   string    `gorm:"size:16;not null"`
	Value       int       `gorm:"not null;default:1"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_votes_room_voter_period,priority:3"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    string    `gorm:"size:64;not null;index"`
	Sender    string    `gorm:"size:32;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

type Note struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID     string    `gorm:"size:64;not null;index"`
	Sender     string    `gorm:"size:32;not null"`
	Text       string    `gorm:"type:text;not null"`
	Revealed   bool      `gorm:"not null;default:false"`
	RevealedAt *time.Time
	CreatedAt  time.Time `gorm:"not null;index"`
}

type TimelineEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    string    `gorm:"size:64;not null;index"`
	EventType string    `gorm:"size:32;not null"`
	Role      string    `gorm:"size:32"`
	MediaID   string    `gorm:"size:64"`
	MediaType string    `gorm:"size:16"`
	Title     string    `gorm:"size:512"`
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (TimelineEntry) TableName() string {
	return "timeline"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&Room{}, &Favorite{}, &Vote{}, &Message{}, &Note{}, &TimelineEntry{}}
}
