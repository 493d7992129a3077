package service

import (
	"context"
	"testing"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMemory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry, err := f.timelineSvc.SaveMemory(ctx, "r1", domain.RoleNivi, movie("42", "Dune"))
	require.NoError(t, err)
	assert.Equal(t, domain.TimelineWatched, entry.EventType)

	entries, err := f.timelineSvc.Timeline(ctx, "r1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Dune", entries[0].Title)
	assert.Equal(t, []domain.Table{domain.TableTimeline}, f.publisher.tables())

	_, err = f.timelineSvc.SaveMemory(ctx, "r1", domain.RoleNivi, MediaInput{ID: "42"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.timelineSvc.Timeline(ctx, "gone", 10)
	require.ErrorIs(t, err, repository.ErrRoomNotFound)
}
