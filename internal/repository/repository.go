package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomExists     = errors.New("room already exists")
	ErrFavoriteExists = errors.New("favorite already exists")
	ErrVoteExists     = errors.New("vote already cast for this period")
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
}

// FavoriteRepository stores favorites. Create returns ErrFavoriteExists when a
// favorite for the same (room, media id, media type) is already stored.
type FavoriteRepository interface {
	Create(ctx context.Context, fav *domain.Favorite) error
	FindByMedia(ctx context.Context, roomID string, media domain.MediaRef) (*domain.Favorite, error)
	DeleteByMedia(ctx context.Context, roomID string, media domain.MediaRef) (int64, error)
	// ListByRoom returns favorites newest first. An empty role lists every role.
	ListByRoom(ctx context.Context, roomID string, role domain.Role) ([]*domain.Favorite, error)
}

// VoteRepository stores votes. Create returns ErrVoteExists when the voter
// already has a vote for the same period start in the room.
type VoteRepository interface {
	Create(ctx context.Context, vote *domain.Vote) error
	FindByVoter(ctx context.Context, roomID string, voter domain.Role, period domain.Period) (*domain.Vote, error)
	// ListInPeriod returns votes created within period, oldest first.
	ListInPeriod(ctx context.Context, roomID string, period domain.Period) ([]*domain.Vote, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Message, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, roomID string, id uuid.UUID) (*domain.Note, error)
	MarkRevealed(ctx context.Context, roomID string, id uuid.UUID, at time.Time) error
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Note, error)
}

type TimelineRepository interface {
	Append(ctx context.Context, entry *domain.TimelineEntry) error
	// ListByRoom returns entries newest first.
	ListByRoom(ctx context.Context, roomID string, limit int) ([]*domain.TimelineEntry, error)
}
