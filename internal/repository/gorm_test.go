package repository_test

import (
	"testing"

	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestGormRepositories(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) repos {
		db, err := repository.OpenDatabase("sqlite", ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() {
			sqlDB, _ := db.DB()
			_ = sqlDB.Close()
		})

		return repos{
			rooms:     repository.NewGormRoomRepository(db),
			favorites: repository.NewGormFavoriteRepository(db),
			votes:     repository.NewGormVoteRepository(db),
			messages:  repository.NewGormMessageRepository(db),
			notes:     repository.NewGormNoteRepository(db),
			timeline:  repository.NewGormTimelineRepository(db),
		}
	})
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := repository.OpenDatabase("mysql", "dsn")
	require.Error(t, err)

	_, err = repository.OpenDatabase("sqlite", "")
	require.Error(t, err)
}
