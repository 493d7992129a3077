package repository_test

import (
	"testing"

	"github.com/immxrtalbeast/movienight/internal/repository"
)

func TestInMemoryRepositories(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) repos {
		return repos{
			rooms:     repository.NewInMemoryRoomRepository(),
			favorites: repository.NewInMemoryFavoriteRepository(),
			votes:     repository.NewInMemoryVoteRepository(),
			messages:  repository.NewInMemoryMessageRepository(),
			notes:     repository.NewInMemoryNoteRepository(),
			timeline:  repository.NewInMemoryTimelineRepository(),
		}
	})
}
