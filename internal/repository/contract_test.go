package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	rooms     repository.RoomRepository
	favorites repository.FavoriteRepository
	votes     repository.VoteRepository
	messages  repository.MessageRepository
	notes     repository.NoteRepository
	timeline  repository.TimelineRepository
}

var base = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func media(id string, t domain.MediaType) domain.Media {
	return domain.Media{MediaRef: domain.MediaRef{ID: id, Type: t}, Title: "Title " + id}
}

func favoriteAt(roomID string, role domain.Role, m domain.Media, at time.Time) *domain.Favorite {
	f := domain.NewFavorite(roomID, role, m)
	f.CreatedAt = at
	return f
}

func seedRoom(t *testing.T, r repos, id string) {
	t.Helper()
	require.NoError(t, r.rooms.Create(context.Background(), domain.NewRoomWithID(id)))
}

func runRepositoryContract(t *testing.T, newRepos func(t *testing.T) repos) {
	t.Run("rooms", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()

		seedRoom(t, r, "r1")
		err := r.rooms.Create(ctx, domain.NewRoomWithID("r1"))
		require.ErrorIs(t, err, repository.ErrRoomExists)

		room, err := r.rooms.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "r1", room.ID)

		_, err = r.rooms.GetByID(ctx, "missing")
		require.ErrorIs(t, err, repository.ErrRoomNotFound)
	})

	t.Run("favorites are unique per media id and type", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")
		seedRoom(t, r, "r2")

		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r1", domain.RoleDherru, media("42", domain.MediaTypeMovie), base)))
		err := r.favorites.Create(ctx, favoriteAt("r1", domain.RoleNivi, media("42", domain.MediaTypeMovie), base.Add(time.Minute)))
		require.ErrorIs(t, err, repository.ErrFavoriteExists)

		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r1", domain.RoleNivi, media("42", domain.MediaTypeTV), base.Add(2*time.Minute))))
		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r2", domain.RoleNivi, media("42", domain.MediaTypeMovie), base)))

		fav, err := r.favorites.FindByMedia(ctx, "r1", domain.MediaRef{ID: "42", Type: domain.MediaTypeMovie})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDherru, fav.Role)

		_, err = r.favorites.FindByMedia(ctx, "r1", domain.MediaRef{ID: "99", Type: domain.MediaTypeMovie})
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("favorites list newest first with role filter", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")

		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r1", domain.RoleDherru, media("1", domain.MediaTypeMovie), base)))
		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r1", domain.RoleNivi, media("2", domain.MediaTypeMovie), base.Add(time.Minute))))
		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r1", domain.RoleDherru, media("3", domain.MediaTypeTV), base.Add(2*time.Minute))))

		all, err := r.favorites.ListByRoom(ctx, "r1", "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "3", all[0].MediaID)
		assert.Equal(t, "2", all[1].MediaID)
		assert.Equal(t, "1", all[2].MediaID)

		dherru, err := r.favorites.ListByRoom(ctx, "r1", domain.RoleDherru)
		require.NoError(t, err)
		require.Len(t, dherru, 2)
		assert.Equal(t, "3", dherru[0].MediaID)

		empty, err := r.favorites.ListByRoom(ctx, "other", "")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("favorites delete by media", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")

		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r1", domain.RoleDherru, media("42", domain.MediaTypeMovie), base)))

		n, err := r.favorites.DeleteByMedia(ctx, "r1", domain.MediaRef{ID: "42", Type: domain.MediaTypeTV})
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = r.favorites.DeleteByMedia(ctx, "r1", domain.MediaRef{ID: "42", Type: domain.MediaTypeMovie})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = r.favorites.FindByMedia(ctx, "r1", domain.MediaRef{ID: "42", Type: domain.MediaTypeMovie})
		require.ErrorIs(t, err, repository.ErrNotFound)

		require.NoError(t, r.favorites.Create(ctx, favoriteAt("r1", domain.RoleNivi, media("42", domain.MediaTypeMovie), base.Add(time.Hour))))
	})

	t.Run("votes are unique per voter and period", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")

		period := domain.DefaultVotingWindow.PeriodAt(base)
		ref := domain.MediaRef{ID: "42", Type: domain.MediaTypeMovie}

		require.NoError(t, r.votes.Create(ctx, domain.NewVote("r1", domain.RoleDherru, ref, period, base)))
		err := r.votes.Create(ctx, domain.NewVote("r1", domain.RoleDherru, ref, period, base.Add(time.Hour)))
		require.ErrorIs(t, err, repository.ErrVoteExists)

		require.NoError(t, r.votes.Create(ctx, domain.NewVote("r1", domain.RoleNivi, ref, period, base.Add(time.Minute))))

		next := domain.DefaultVotingWindow.PeriodAt(period.End)
		require.NoError(t, r.votes.Create(ctx, domain.NewVote("r1", domain.RoleDherru, ref, next, period.End.Add(time.Minute))))

		v, err := r.votes.FindByVoter(ctx, "r1", domain.RoleDherru, period)
		require.NoError(t, err)
		assert.Equal(t, "42", v.MediaID)

		votes, err := r.votes.ListInPeriod(ctx, "r1", period)
		require.NoError(t, err)
		require.Len(t, votes, 2)
		assert.Equal(t, domain.RoleDherru, votes[0].Voter)
		assert.Equal(t, domain.RoleNivi, votes[1].Voter)

		_, err = r.votes.FindByVoter(ctx, "r1", domain.RoleNivi, next)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("concurrent duplicate votes store one row", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")

		period := domain.DefaultVotingWindow.PeriodAt(base)
		ref := domain.MediaRef{ID: "42", Type: domain.MediaTypeMovie}

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- r.votes.Create(ctx, domain.NewVote("r1", domain.RoleNivi, ref, period, base.Add(time.Duration(i)*time.Second)))
			}()
		}
		wg.Wait()
		close(errs)

		accepted := 0
		for err := range errs {
			if err == nil {
				accepted++
				continue
			}
			require.ErrorIs(t, err, repository.ErrVoteExists)
		}
		assert.Equal(t, 1, accepted)

		votes, err := r.votes.ListInPeriod(ctx, "r1", period)
		require.NoError(t, err)
		assert.Len(t, votes, 1)
	})

	t.Run("messages oldest first", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")

		first, err := domain.NewMessage("r1", domain.RoleDherru, "first")
		require.NoError(t, err)
		first.CreatedAt = base
		second, err := domain.NewMessage("r1", domain.RoleNivi, "second")
		require.NoError(t, err)
		second.CreatedAt = base.Add(time.Second)

		require.NoError(t, r.messages.Create(ctx, second))
		require.NoError(t, r.messages.Create(ctx, first))

		msgs, err := r.messages.ListByRoom(ctx, "r1")
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "first", msgs[0].Text)
		assert.Equal(t, "second", msgs[1].Text)
	})

	t.Run("notes reveal", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")

		note, err := domain.NewNote("r1", domain.RoleDherru, "sealed")
		require.NoError(t, err)
		require.NoError(t, r.notes.Create(ctx, note))

		require.NoError(t, r.notes.MarkRevealed(ctx, "r1", note.ID, base))
		got, err := r.notes.GetByID(ctx, "r1", note.ID)
		require.NoError(t, err)
		assert.True(t, got.Revealed)
		require.NotNil(t, got.RevealedAt)
		assert.True(t, got.RevealedAt.Equal(base))

		require.NoError(t, r.notes.MarkRevealed(ctx, "r1", note.ID, base.Add(time.Hour)))
		got, err = r.notes.GetByID(ctx, "r1", note.ID)
		require.NoError(t, err)
		assert.True(t, got.RevealedAt.Equal(base))

		err = r.notes.MarkRevealed(ctx, "r1", uuid.New(), base)
		require.ErrorIs(t, err, repository.ErrNotFound)
		_, err = r.notes.GetByID(ctx, "r2", note.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)

		notes, err := r.notes.ListByRoom(ctx, "r1")
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})

	t.Run("timeline newest first with limit", func(t *testing.T) {
		r := newRepos(t)
		ctx := context.Background()
		seedRoom(t, r, "r1")

		for i, id := range []string{"1", "2", "3"} {
			e := domain.NewTimelineEntry("r1", domain.TimelineWatched, domain.RoleNivi, media(id, domain.MediaTypeMovie), "")
			e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, r.timeline.Append(ctx, e))
		}

		entries, err := r.timeline.ListByRoom(ctx, "r1", 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "3", entries[0].MediaID)
		assert.Equal(t, "2", entries[1].MediaID)
	})

	t.Run("canceled context", func(t *testing.T) {
		r := newRepos(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.rooms.GetByID(ctx, "r1")
		require.ErrorIs(t, err, context.Canceled)
		_, err = r.favorites.ListByRoom(ctx, "r1", "")
		require.ErrorIs(t, err, context.Canceled)
	})
}
