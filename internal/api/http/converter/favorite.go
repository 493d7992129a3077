package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

type FavoriteResponse struct {
	ID         uuid.UUID        `json:"id"`
	RoomID     string           `json:"room_id"`
	Role       domain.Role      `json:"role"`
	MediaID    string           `json:"media_id"`
	MediaType  domain.MediaType `json:"media_type"`
	Title      string           `json:"title"`
	PosterPath string           `json:"poster_path,omitempty"`
	Rating     *float64         `json:"rating,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

func FavoriteToApi(f *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:         f.ID,
		RoomID:     f.RoomID,
		Role:       f.Role,
		MediaID:    f.MediaID,
		MediaType:  f.MediaType,
		Title:      f.Title,
		PosterPath: f.PosterPath,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt,
	}
}

func FavoritesToApi(favs []*domain.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favs))
	for _, f := range favs {
		out = append(out, FavoriteToApi(f))
	}
	return out
}
