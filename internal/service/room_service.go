package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

const maxRoomIDAttempts = 5

type RoomService struct {
	rooms repository.RoomRepository
	log   *slog.Logger
}

func NewRoomService(rooms repository.RoomRepository, log *slog.Logger) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	return &RoomService{
		rooms: rooms,
		log:   log,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context) (*domain.Room, error) {
	const op = "service.room.create"
	log := s.log.With(slog.String("op", op))

	for attempt := 0; attempt < maxRoomIDAttempts; attempt++ {
		room := domain.NewRoom()
		if err := s.rooms.Create(ctx, room); err != nil {
			if errors.Is(err, repository.ErrRoomExists) {
				log.Debug("room id collision, retrying", slog.String("room_id", room.ID))
				continue
			}
			log.Error("failed to create room", sl.Err(err))
			return nil, err
		}

		log.Info("room created", slog.String("room_id", room.ID))
		return room, nil
	}

	return nil, errors.New("could not allocate a unique room id")
}

// EnsureRoom returns the room, creating it on first visit. A concurrent
// creation of the same room by the other participant is not an error.
func (s *RoomService) EnsureRoom(ctx context.Context, id string) (*domain.Room, error) {
	const op = "service.room.ensure"

	id, err := domain.NormalizeRoomID(id)
	if err != nil {
		return nil, err
	}
	log := s.log.With(slog.String("op", op), slog.String("room_id", id))

	room, err := s.rooms.GetByID(ctx, id)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, repository.ErrRoomNotFound) {
		log.Error("failed to load room", sl.Err(err))
		return nil, err
	}

	room = domain.NewRoomWithID(id)
	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrRoomExists) {
			log.Debug("room created concurrently")
			return s.rooms.GetByID(ctx, id)
		}
		log.Error("failed to create room", sl.Err(err))
		return nil, err
	}

	log.Info("room created")
	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	id, err := domain.NormalizeRoomID(id)
	if err != nil {
		return nil, err
	}
	return s.rooms.GetByID(ctx, id)
}

// requireRoom normalizes a room token and checks that the room exists.
func requireRoom(ctx context.Context, rooms repository.RoomRepository, id string) (string, error) {
	id, err := domain.NormalizeRoomID(id)
	if err != nil {
		return "", err
	}
	if _, err := rooms.GetByID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

func requireRole(field string, role domain.Role) error {
	if !role.Valid() {
		return domain.NewValidationError(field, "must be one of Dherru, Nivi")
	}
	return nil
}
