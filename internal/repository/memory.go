package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

type InMemoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func NewInMemoryRoomRepository() *InMemoryRoomRepository {
	return &InMemoryRoomRepository{
		rooms: make(map[string]*domain.Room),
	}
}

func (r *InMemoryRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; ok {
		return ErrRoomExists
	}

	cp := *room
	r.rooms[room.ID] = &cp
	return nil
}

func (r *InMemoryRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}

	cp := *room
	return &cp, nil
}

type InMemoryFavoriteRepository struct {
	mu        sync.RWMutex
	favorites []*domain.Favorite
	byMedia   map[string]uuid.UUID
}

func NewInMemoryFavoriteRepository() *InMemoryFavoriteRepository {
	return &InMemoryFavoriteRepository{
		byMedia: make(map[string]uuid.UUID),
	}
}

func favoriteKey(roomID string, media domain.MediaRef) string {
	return roomID + "|" + media.Key()
}

func (r *InMemoryFavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey(fav.RoomID, fav.Ref())
	if _, ok := r.byMedia[key]; ok {
		return ErrFavoriteExists
	}

	cp := *fav
	r.favorites = append(r.favorites, &cp)
	r.byMedia[key] = fav.ID
	return nil
}

func (r *InMemoryFavoriteRepository) FindByMedia(ctx context.Context, roomID string, media domain.MediaRef) (*domain.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byMedia[favoriteKey(roomID, media)]
	if !ok {
		return nil, ErrNotFound
	}

	for _, fav := range r.favorites {
		if fav.ID == id {
			cp := *fav
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryFavoriteRepository) DeleteByMedia(ctx context.Context, roomID string, media domain.MediaRef) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey(roomID, media)
	id, ok := r.byMedia[key]
	if !ok {
		return 0, nil
	}

	delete(r.byMedia, key)
	kept := r.favorites[:0]
	for _, fav := range r.favorites {
		if fav.ID != id {
			kept = append(kept, fav)
		}
	}
	r.favorites = kept
	return 1, nil
}

func (r *InMemoryFavoriteRepository) ListByRoom(ctx context.Context, roomID string, role domain.Role) ([]*domain.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Favorite, 0)
	for i := len(r.favorites) - 1; i >= 0; i-- {
		fav := r.favorites[i]
		if fav.RoomID != roomID {
			continue
		}
		if role != "" && fav.Role != role {
			continue
		}
		cp := *fav
		result = append(result, &cp)
	}
	return result, nil
}

type InMemoryVoteRepository struct {
	mu      sync.RWMutex
	votes   []*domain.Vote
	byVoter map[string]uuid.UUID
}

func NewInMemoryVoteRepository() *InMemoryVoteRepository {
	return &InMemoryVoteRepository{
		byVoter: make(map[string]uuid.UUID),
	}
}

func voteKey(roomID string, voter domain.Role, periodStart time.Time) string {
	return roomID + "|" + string(voter) + "|" + periodStart.UTC().Format(time.RFC3339)
}

func (r *InMemoryVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey(vote.RoomID, vote.Voter, vote.PeriodStart)
	if _, ok := r.byVoter[key]; ok {
		return ErrVoteExists
	}

	cp := *vote
	r.votes = append(r.votes, &cp)
	r.byVoter[key] = vote.ID
	return nil
}

func (r *InMemoryVoteRepository) FindByVoter(ctx context.Context, roomID string, voter domain.Role, period domain.Period) (*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.votes {
		if v.RoomID == roomID && v.Voter == voter && period.Contains(v.CreatedAt) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryVoteRepository) ListInPeriod(ctx context.Context, roomID string, period domain.Period) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Vote, 0)
	for _, v := range r.votes {
		if v.RoomID == roomID && period.Contains(v.CreatedAt) {
			cp := *v
			result = append(result, &cp)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type InMemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewInMemoryMessageRepository() *InMemoryMessageRepository {
	return &InMemoryMessageRepository{}
}

func (r *InMemoryMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *InMemoryMessageRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Message, 0)
	for _, m := range r.messages {
		if m.RoomID == roomID {
			cp := *m
			result = append(result, &cp)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type InMemoryNoteRepository struct {
	mu    sync.RWMutex
	notes []*domain.Note
}

func NewInMemoryNoteRepository() *InMemoryNoteRepository {
	return &InMemoryNoteRepository{}
}

func (r *InMemoryNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *note
	r.notes = append(r.notes, &cp)
	return nil
}

func (r *InMemoryNoteRepository) GetByID(ctx context.Context, roomID string, id uuid.UUID) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notes {
		if n.ID == id && n.RoomID == roomID {
			cp := *n
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryNoteRepository) MarkRevealed(ctx context.Context, roomID string, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notes {
		if n.ID == id && n.RoomID == roomID {
			if !n.Revealed {
				revealedAt := at.UTC()
				n.Revealed = true
				n.RevealedAt = &revealedAt
			}
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryNoteRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Note, 0)
	for _, n := range r.notes {
		if n.RoomID == roomID {
			cp := *n
			result = append(result, &cp)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type InMemoryTimelineRepository struct {
	mu      sync.RWMutex
	entries []*domain.TimelineEntry
}

func NewInMemoryTimelineRepository() *InMemoryTimelineRepository {
	return &InMemoryTimelineRepository{}
}

func (r *InMemoryTimelineRepository) Append(ctx context.Context, entry *domain.TimelineEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *InMemoryTimelineRepository) ListByRoom(ctx context.Context, roomID string, limit int) ([]*domain.TimelineEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.TimelineEntry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.RoomID != roomID {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
