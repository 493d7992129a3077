package service

import (
	"context"
	"testing"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomGeneratesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room, err := f.roomSvc.CreateRoom(ctx)
	require.NoError(t, err)
	assert.Len(t, room.ID, 8)

	got, err := f.roomSvc.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
}

func TestEnsureRoomIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.roomSvc.EnsureRoom(ctx, "Date42")
	require.NoError(t, err)
	assert.Equal(t, "date42", first.ID)

	second, err := f.roomSvc.EnsureRoom(ctx, "date42")
	require.NoError(t, err)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestGetRoomErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.roomSvc.GetRoom(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrRoomNotFound)

	_, err = f.roomSvc.GetRoom(ctx, "../etc")
	require.ErrorIs(t, err, domain.ErrValidation)
}
