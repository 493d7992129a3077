package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

type FavoriteService struct {
	rooms     repository.RoomRepository
	favorites repository.FavoriteRepository
	timeline  repository.TimelineRepository
	publisher Publisher
	log       *slog.Logger
}

func NewFavoriteService(
	rooms repository.RoomRepository,
	favorites repository.FavoriteRepository,
	timeline repository.TimelineRepository,
	publisher Publisher,
	log *slog.Logger,
) *FavoriteService {
	if log == nil {
		log = slog.Default()
	}
	return &FavoriteService{
		rooms:     rooms,
		favorites: favorites,
		timeline:  timeline,
		publisher: publisherOrNop(publisher),
		log:       log,
	}
}

// AddFavorite stores the title as a favorite of the room. When the room already
// has it, the stored record is returned and created is false.
func (s *FavoriteService) AddFavorite(ctx context.Context, roomID string, role domain.Role, input MediaInput) (*domain.Favorite, bool, error) {
	const op = "service.favorite.add"

	media, err := input.toMedia()
	if err != nil {
		return nil, false, err
	}
	if err := requireRole("role", role); err != nil {
		return nil, false, err
	}
	roomID, err = requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, false, err
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", roomID),
		slog.String("media", media.Key()),
	)

	existing, err := s.favorites.FindByMedia(ctx, roomID, media.MediaRef)
	if err == nil {
		log.Debug("favorite already present")
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to look up favorite", sl.Err(err))
		return nil, false, err
	}

	fav := domain.NewFavorite(roomID, role, media)
	if err := s.favorites.Create(ctx, fav); err != nil {
		if errors.Is(err, repository.ErrFavoriteExists) {
			log.Debug("favorite added concurrently")
			existing, err := s.favorites.FindByMedia(ctx, roomID, media.MediaRef)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		log.Error("failed to create favorite", sl.Err(err))
		return nil, false, err
	}

	log.Info("favorite added", slog.String("role", string(role)))
	s.publisher.Publish(domain.NewChangeEvent(domain.ChangeInsert, domain.TableFavorites, roomID, fav.ID.String()))

	entry := domain.NewTimelineEntry(roomID, domain.TimelineFavoriteAdded, role, media, "")
	if err := s.timeline.Append(ctx, entry); err != nil {
		log.Warn("failed to append timeline entry", sl.Err(err))
	} else {
		s.publisher.Publish(domain.NewChangeEvent(domain.ChangeInsert, domain.TableTimeline, roomID, entry.ID.String()))
	}

	return fav, true, nil
}

// RemoveFavorite deletes the room's favorite for media and reports whether a
// row was removed.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, roomID string, media domain.MediaRef) (bool, error) {
	const op = "service.favorite.remove"

	if err := media.Validate(); err != nil {
		return false, err
	}
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return false, err
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", roomID),
		slog.String("media", media.Key()),
	)

	removed, err := s.favorites.DeleteByMedia(ctx, roomID, media)
	if err != nil {
		log.Error("failed to remove favorite", sl.Err(err))
		return false, err
	}
	if removed == 0 {
		return false, nil
	}

	log.Info("favorite removed")
	s.publisher.Publish(domain.NewChangeEvent(domain.ChangeDelete, domain.TableFavorites, roomID, media.Key()))
	return true, nil
}

// ListFavorites returns the room's favorites, most recently added first. An
// empty role lists both participants' favorites.
func (s *FavoriteService) ListFavorites(ctx context.Context, roomID string, role domain.Role) ([]*domain.Favorite, error) {
	if role != "" {
		if err := requireRole("role", role); err != nil {
			return nil, err
		}
	}
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListByRoom(ctx, roomID, role)
}
