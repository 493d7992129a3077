package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/catalog"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

type RoomInteractor interface {
	CreateRoom(ctx context.Context) (*domain.Room, error)
	EnsureRoom(ctx context.Context, id string) (*domain.Room, error)
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
}

type FavoriteInteractor interface {
	AddFavorite(ctx context.Context, roomID string, role domain.Role, media MediaInput) (*domain.Favorite, bool, error)
	RemoveFavorite(ctx context.Context, roomID string, media domain.MediaRef) (bool, error)
	ListFavorites(ctx context.Context, roomID string, role domain.Role) ([]*domain.Favorite, error)
}

type VotingInteractor interface {
	CurrentPeriod(now time.Time) domain.Period
	Countdown(now time.Time) domain.Countdown
	CastVote(ctx context.Context, roomID string, voter domain.Role, media domain.MediaRef) (*domain.CastResult, error)
	HasVoted(ctx context.Context, roomID string, voter domain.Role) (bool, error)
	Votes(ctx context.Context, roomID string) ([]*domain.Vote, error)
	Tally(ctx context.Context, roomID string) ([]domain.TallyEntry, error)
	Winner(ctx context.Context, roomID string) (*domain.Winner, error)
}

type MessageInteractor interface {
	SendMessage(ctx context.Context, roomID string, sender domain.Role, text string) (*domain.Message, error)
	ListMessages(ctx context.Context, roomID string) ([]*domain.Message, error)
	SendNote(ctx context.Context, roomID string, sender domain.Role, text string) (*domain.Note, error)
	ListNotes(ctx context.Context, roomID string, viewer domain.Role) ([]*domain.Note, error)
	RevealNote(ctx context.Context, roomID string, noteID uuid.UUID, viewer domain.Role) (*domain.Note, error)
}

type TimelineInteractor interface {
	SaveMemory(ctx context.Context, roomID string, role domain.Role, media MediaInput) (*domain.TimelineEntry, error)
	Timeline(ctx context.Context, roomID string, limit int) ([]*domain.TimelineEntry, error)
}

type CatalogInteractor interface {
	Search(ctx context.Context, query string, searchType catalog.SearchType) []catalog.Item
	Details(ctx context.Context, media domain.MediaRef) *catalog.Details
	Recommendations(ctx context.Context, roomID string, role domain.Role) ([]catalog.Item, error)
	Suggestions(ctx context.Context, roomID string) ([]catalog.Item, error)
}

// Publisher receives change notifications after successful writes.
type Publisher interface {
	Publish(event domain.ChangeEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.ChangeEvent) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
