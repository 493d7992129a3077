package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/handlers/slogdiscard"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (p *recordingPublisher) Publish(e domain.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) tables() []domain.Table {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Table, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Table)
	}
	return out
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	rooms     *repository.InMemoryRoomRepository
	favorites *repository.InMemoryFavoriteRepository
	votes     *repository.InMemoryVoteRepository
	timeline  *repository.InMemoryTimelineRepository
	publisher *recordingPublisher
	clock     *testClock

	roomSvc     *RoomService
	favoriteSvc *FavoriteService
	voteSvc     *VoteService
	messageSvc  *MessageService
	timelineSvc *TimelineService
}

// Sunday inside the period that opened Thursday 2026-10-15 00:00 UTC.
var fixtureNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slogdiscard.NewDiscardLogger()

	f := &fixture{
		rooms:     repository.NewInMemoryRoomRepository(),
		favorites: repository.NewInMemoryFavoriteRepository(),
		votes:     repository.NewInMemoryVoteRepository(),
		timeline:  repository.NewInMemoryTimelineRepository(),
		publisher: &recordingPublisher{},
		clock:     &testClock{now: fixtureNow},
	}
	f.roomSvc = NewRoomService(f.rooms, log)
	f.favoriteSvc = NewFavoriteService(f.rooms, f.favorites, f.timeline, f.publisher, log)
	f.voteSvc = NewVoteService(f.rooms, f.favorites, f.votes, f.timeline, f.publisher, log, WithClock(f.clock.Now))
	f.messageSvc = NewMessageService(f.rooms, repository.NewInMemoryMessageRepository(), repository.NewInMemoryNoteRepository(), f.publisher, log)
	f.timelineSvc = NewTimelineService(f.rooms, f.timeline, f.publisher, log)

	_, err := f.roomSvc.EnsureRoom(context.Background(), "r1")
	require.NoError(t, err)
	return f
}

func movie(id, title string) MediaInput {
	return MediaInput{ID: id, Type: "movie", Title: title}
}

func (f *fixture) favorite(t *testing.T, role domain.Role, in MediaInput) *domain.Favorite {
	t.Helper()
	fav, _, err := f.favoriteSvc.AddFavorite(context.Background(), "r1", role, in)
	require.NoError(t, err)
	return fav
}
