package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository/model"
	"gorm.io/gorm"
)

// The gorm repositories expect a *gorm.DB opened with TranslateError enabled
// so that unique index violations surface as gorm.ErrDuplicatedKey.

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if room == nil {
		return errors.New("room is nil")
	}

	roomModel := &model.Room{ID: room.ID, CreatedAt: room.CreatedAt.UTC()}
	if err := r.db.WithContext(ctx).Create(roomModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRoomExists
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (r *GormRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	return &domain.Room{ID: room.ID, CreatedAt: room.CreatedAt.UTC()}, nil
}

type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if fav == nil {
		return errors.New("favorite is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelFavorite(fav)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrFavoriteExists
		}
		return fmt.Errorf("create favorite: %w", err)
	}
	return nil
}

func (r *GormFavoriteRepository) FindByMedia(ctx context.Context, roomID string, media domain.MediaRef) (*domain.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var fav model.Favorite
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND media_id = ? AND media_type = ?", roomID, media.ID, string(media.Type)).
		First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}

	return toDomainFavorite(&fav), nil
}

func (r *GormFavoriteRepository) DeleteByMedia(ctx context.Context, roomID string, media domain.MediaRef) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).
		Where("room_id = ? AND media_id = ? AND media_type = ?", roomID, media.ID, string(media.Type)).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete favorite: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *GormFavoriteRepository) ListByRoom(ctx context.Context, roomID string, role domain.Role) ([]*domain.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("room_id = ?", roomID)
	if role != "" {
		query = query.Where("role = ?", string(role))
	}

	var favs []model.Favorite
	if err := query.Order("created_at DESC").Find(&favs).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	result := make([]*domain.Favorite, 0, len(favs))
	for i := range favs {
		result = append(result, toDomainFavorite(&favs[i]))
	}
	return result, nil
}

type GormVoteRepository struct {
	db *gorm.DB
}

func NewGormVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

func (r *GormVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if vote == nil {
		return errors.New("vote is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelVote(vote)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrVoteExists
		}
		return fmt.Errorf("create vote: %w", err)
	}
	return nil
}

func (r *GormVoteRepository) FindByVoter(ctx context.Context, roomID string, voter domain.Role, period domain.Period) (*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var vote model.Vote
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND voter = ? AND created_at >= ? AND created_at < ?",
			roomID, string(voter), period.Start.UTC(), period.End.UTC()).
		Order("created_at ASC").
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find vote: %w", err)
	}

	return toDomainVote(&vote), nil
}

func (r *GormVoteRepository) ListInPeriod(ctx context.Context, roomID string, period domain.Period) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND created_at >= ? AND created_at < ?", roomID, period.Start.UTC(), period.End.UTC()).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	result := make([]*domain.Vote, 0, len(votes))
	for i := range votes {
		result = append(result, toDomainVote(&votes[i]))
	}
	return result, nil
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg == nil {
		return errors.New("message is nil")
	}

	m := &model.Message{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		Sender:    string(msg.Sender),
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *GormMessageRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var msgs []model.Message
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("created_at ASC").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	result := make([]*domain.Message, 0, len(msgs))
	for _, m := range msgs {
		result = append(result, &domain.Message{
			ID:        m.ID,
			RoomID:    m.RoomID,
			Sender:    domain.Role(m.Sender),
			Text:      m.Text,
			CreatedAt: m.CreatedAt.UTC(),
		})
	}
	return result, nil
}

type GormNoteRepository struct {
	db *gorm.DB
}

func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

func (r *GormNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if note == nil {
		return errors.New("note is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelNote(note)).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *GormNoteRepository) GetByID(ctx context.Context, roomID string, id uuid.UUID) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var note model.Note
	if err := r.db.WithContext(ctx).First(&note, "id = ? AND room_id = ?", id, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return toDomainNote(&note), nil
}

func (r *GormNoteRepository) MarkRevealed(ctx context.Context, roomID string, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note model.Note
		if err := tx.First(&note, "id = ? AND room_id = ?", id, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if note.Revealed {
			return nil
		}

		revealedAt := at.UTC()
		return tx.Model(&model.Note{}).
			Where("id = ? AND revealed = ?", id, false).
			Updates(map[string]any{
				"revealed":    true,
				"revealed_at": &revealedAt,
			}).Error
	})
}

func (r *GormNoteRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var notes []model.Note
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	result := make([]*domain.Note, 0, len(notes))
	for i := range notes {
		result = append(result, toDomainNote(&notes[i]))
	}
	return result, nil
}

type GormTimelineRepository struct {
	db *gorm.DB
}

func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

func (r *GormTimelineRepository) Append(ctx context.Context, entry *domain.TimelineEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry == nil {
		return errors.New("timeline entry is nil")
	}

	m := &model.TimelineEntry{
		ID:        entry.ID,
		RoomID:    entry.RoomID,
		EventType: string(entry.EventType),
		Role:      string(entry.Role),
		MediaID:   entry.MediaID,
		MediaType: string(entry.MediaType),
		Title:     entry.Title,
		Message:   entry.Message,
		CreatedAt: entry.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("append timeline: %w", err)
	}
	return nil
}

func (r *GormTimelineRepository) ListByRoom(ctx context.Context, roomID string, limit int) ([]*domain.TimelineEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []model.TimelineEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}

	result := make([]*domain.TimelineEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, &domain.TimelineEntry{
			ID:        e.ID,
			RoomID:    e.RoomID,
			EventType: domain.TimelineEventType(e.EventType),
			Role:      domain.Role(e.Role),
			MediaID:   e.MediaID,
			MediaType: domain.MediaType(e.MediaType),
			Title:     e.Title,
			Message:   e.Message,
			CreatedAt: e.CreatedAt.UTC(),
		})
	}
	return result, nil
}

func toModelFavorite(f *domain.Favorite) *model.Favorite {
	return &model.Favorite{
		ID:         f.ID,
		RoomID:     f.RoomID,
		Role:       string(f.Role),
		MediaID:    f.MediaID,
		MediaType:  string(f.MediaType),
		Title:      f.Title,
		PosterPath: f.PosterPath,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt.UTC(),
	}
}

func toDomainFavorite(f *model.Favorite) *domain.Favorite {
	return &domain.Favorite{
		ID:         f.ID,
		RoomID:     f.RoomID,
		Role:       domain.Role(f.Role),
		MediaID:    f.MediaID,
		MediaType:  domain.MediaType(f.MediaType),
		Title:      f.Title,
		PosterPath: f.PosterPath,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt.UTC(),
	}
}

func toModelVote(v *domain.Vote) *model.Vote {
	value := v.Value
	if value == 0 {
		value = 1
	}
	return &model.Vote{
		ID:          v.ID,
		RoomID:      v.RoomID,
		Voter:       string(v.Voter),
		MediaID:     v.MediaID,
		MediaType:   string(v.MediaType),
		Value:       value,
		PeriodStart: v.PeriodStart.UTC(),
		CreatedAt:   v.CreatedAt.UTC(),
	}
}

func toDomainVote(v *model.Vote) *domain.Vote {
	return &domain.Vote{
		ID:          v.ID,
		RoomID:      v.RoomID,
		Voter:       domain.Role(v.Voter),
		MediaID:     v.MediaID,
		MediaType:   domain.MediaType(v.MediaType),
		Value:       v.Value,
		PeriodStart: v.PeriodStart.UTC(),
		CreatedAt:   v.CreatedAt.UTC(),
	}
}

func toModelNote(n *domain.Note) *model.Note {
	var revealedAt *time.Time
	if n.RevealedAt != nil {
		t := n.RevealedAt.UTC()
		revealedAt = &t
	}
	return &model.Note{
		ID:         n.ID,
		RoomID:     n.RoomID,
		Sender:     string(n.Sender),
		Text:       n.Text,
		Revealed:   n.Revealed,
		RevealedAt: revealedAt,
		CreatedAt:  n.CreatedAt.UTC(),
	}
}

func toDomainNote(n *model.Note) *domain.Note {
	var revealedAt *time.Time
	if n.RevealedAt != nil {
		t := n.RevealedAt.UTC()
		revealedAt = &t
	}
	return &domain.Note{
		ID:         n.ID,
		RoomID:     n.RoomID,
		Sender:     domain.Role(n.Sender),
		Text:       n.Text,
		Revealed:   n.Revealed,
		RevealedAt: revealedAt,
		CreatedAt:  n.CreatedAt.UTC(),
	}
}
