package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

type VoteResponse struct {
	ID          uuid.UUID        `json:"id"`
	RoomID      string           `json:"room_id"`
	Voter       domain.Role      `json:"voter"`
	MediaID     string           `json:"media_id"`
	MediaType   domain.MediaType `json:"media_type"`
	Value       int              `json:"value"`
	PeriodStart time.Time        `json:"period_start"`
	CreatedAt   time.Time        `json:"created_at"`
}

func VoteToApi(v *domain.Vote) VoteResponse {
	return VoteResponse{
		ID:          v.ID,
		RoomID:      v.RoomID,
		Voter:       v.Voter,
		MediaID:     v.MediaID,
		MediaType:   v.MediaType,
		Value:       v.Value,
		PeriodStart: v.PeriodStart,
		CreatedAt:   v.CreatedAt,
	}
}

func VotesToApi(votes []*domain.Vote) []VoteResponse {
	out := make([]VoteResponse, 0, len(votes))
	for _, v := range votes {
		out = append(out, VoteToApi(v))
	}
	return out
}

type TallyEntryResponse struct {
	MediaID   string           `json:"media_id"`
	MediaType domain.MediaType `json:"media_type"`
	Count     int              `json:"count"`
}

func TallyToApi(entries []domain.TallyEntry) []TallyEntryResponse {
	out := make([]TallyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TallyEntryResponse{
			MediaID:   e.Media.ID,
			MediaType: e.Media.Type,
			Count:     e.Count,
		})
	}
	return out
}

type WinnerResponse struct {
	MediaID   string            `json:"media_id"`
	MediaType domain.MediaType  `json:"media_type"`
	Count     int               `json:"count"`
	Total     int               `json:"total"`
	Favorite  *FavoriteResponse `json:"favorite,omitempty"`
	Tonight   bool              `json:"tonight"`
}

// WinnerToApi returns nil when no winner has been decided.
func WinnerToApi(w *domain.Winner) *WinnerResponse {
	if w == nil {
		return nil
	}
	resp := &WinnerResponse{
		MediaID:   w.Media.ID,
		MediaType: w.Media.Type,
		Count:     w.Count,
		Total:     w.Total,
		Tonight:   w.Tonight,
	}
	if w.Favorite != nil {
		fav := FavoriteToApi(w.Favorite)
		resp.Favorite = &fav
	}
	return resp
}
