package service

import (
	"context"
	"log/slog"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

const defaultTimelineLimit = 100

type TimelineService struct {
	rooms     repository.RoomRepository
	timeline  repository.TimelineRepository
	publisher Publisher
	log       *slog.Logger
}

func NewTimelineService(rooms repository.RoomRepository, timeline repository.TimelineRepository, publisher Publisher, log *slog.Logger) *TimelineService {
	if log == nil {
		log = slog.Default()
	}
	return &TimelineService{
		rooms:     rooms,
		timeline:  timeline,
		publisher: publisherOrNop(publisher),
		log:       log,
	}
}

// SaveMemory records a watched title on the room's timeline.
func (s *TimelineService) SaveMemory(ctx context.Context, roomID string, role domain.Role, input MediaInput) (*domain.TimelineEntry, error) {
	const op = "service.timeline.memory"

	media, err := input.toMedia()
	if err != nil {
		return nil, err
	}
	if err := requireRole("role", role); err != nil {
		return nil, err
	}
	roomID, err = requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}

	entry := domain.NewTimelineEntry(roomID, domain.TimelineWatched, role, media, "")
	if err := s.timeline.Append(ctx, entry); err != nil {
		s.log.Error("failed to save memory", slog.String("op", op), slog.String("room_id", roomID), sl.Err(err))
		return nil, err
	}

	s.publisher.Publish(domain.NewChangeEvent(domain.ChangeInsert, domain.TableTimeline, roomID, entry.ID.String()))
	return entry, nil
}

// Timeline returns the room's timeline, newest first.
func (s *TimelineService) Timeline(ctx context.Context, roomID string, limit int) ([]*domain.TimelineEntry, error) {
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTimelineLimit
	}
	return s.timeline.ListByRoom(ctx, roomID, limit)
}
