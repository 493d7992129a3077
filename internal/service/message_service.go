package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

type MessageService struct {
	rooms     repository.RoomRepository
	messages  repository.MessageRepository
	notes     repository.NoteRepository
	publisher Publisher
	log       *slog.Logger
}

func NewMessageService(
	rooms repository.RoomRepository,
	messages repository.MessageRepository,
	notes repository.NoteRepository,
	publisher Publisher,
	log *slog.Logger,
) *MessageService {
	if log == nil {
		log = slog.Default()
	}
	return &MessageService{
		rooms:     rooms,
		messages:  messages,
		notes:     notes,
		publisher: publisherOrNop(publisher),
		log:       log,
	}
}

func (s *MessageService) SendMessage(ctx context.Context, roomID string, sender domain.Role, text string) (*domain.Message, error) {
	const op = "service.message.send"

	if err := requireRole("sender", sender); err != nil {
		return nil, err
	}
	msg, err := domain.NewMessage("", sender, text)
	if err != nil {
		return nil, err
	}
	roomID, err = requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	msg.RoomID = roomID

	if err := s.messages.Create(ctx, msg); err != nil {
		s.log.Error("failed to save message", slog.String("op", op), slog.String("room_id", roomID), sl.Err(err))
		return nil, err
	}

	s.publisher.Publish(domain.NewChangeEvent(domain.ChangeInsert, domain.TableMessages, roomID, msg.ID.String()))
	return msg, nil
}

// ListMessages returns the room's shared messages, oldest first.
func (s *MessageService) ListMessages(ctx context.Context, roomID string) ([]*domain.Message, error) {
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	return s.messages.ListByRoom(ctx, roomID)
}

func (s *MessageService) SendNote(ctx context.Context, roomID string, sender domain.Role, text string) (*domain.Note, error) {
	const op = "service.note.send"

	if err := requireRole("sender", sender); err != nil {
		return nil, err
	}
	note, err := domain.NewNote("", sender, text)
	if err != nil {
		return nil, err
	}
	roomID, err = requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	note.RoomID = roomID

	if err := s.notes.Create(ctx, note); err != nil {
		s.log.Error("failed to save note", slog.String("op", op), slog.String("room_id", roomID), sl.Err(err))
		return nil, err
	}

	s.publisher.Publish(domain.NewChangeEvent(domain.ChangeInsert, domain.TableNotes, roomID, note.ID.String()))
	return note, nil
}

// ListNotes returns the room's notes oldest first, as viewer may see them.
func (s *MessageService) ListNotes(ctx context.Context, roomID string, viewer domain.Role) ([]*domain.Note, error) {
	if err := requireRole("viewer", viewer); err != nil {
		return nil, err
	}
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		views = append(views, n.ViewFor(viewer))
	}
	return views, nil
}

// RevealNote unseals a note for its recipient, the sender's partner.
// Revealing twice is a no-op.
func (s *MessageService) RevealNote(ctx context.Context, roomID string, noteID uuid.UUID, viewer domain.Role) (*domain.Note, error) {
	const op = "service.note.reveal"

	if err := requireRole("viewer", viewer); err != nil {
		return nil, err
	}
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", roomID),
		slog.String("note_id", noteID.String()),
	)

	note, err := s.notes.GetByID(ctx, roomID, noteID)
	if err != nil {
		return nil, err
	}
	if viewer != note.Recipient() {
		return nil, domain.ErrNotRecipient
	}
	if note.Revealed {
		return note, nil
	}

	if err := s.notes.MarkRevealed(ctx, roomID, noteID, time.Now()); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("failed to reveal note", sl.Err(err))
		}
		return nil, err
	}

	log.Info("note revealed")
	s.publisher.Publish(domain.NewChangeEvent(domain.ChangeUpdate, domain.TableNotes, roomID, noteID.String()))
	return s.notes.GetByID(ctx, roomID, noteID)
}
