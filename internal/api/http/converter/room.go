package converter

import (
	"time"

	"github.com/immxrtalbeast/movienight/internal/domain"
)

type RoomResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func RoomToApi(r *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
	}
}

type PeriodResponse struct {
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Countdown domain.Countdown `json:"countdown"`
}

func PeriodToApi(p domain.Period, c domain.Countdown) *PeriodResponse {
	return &PeriodResponse{Start: p.Start, End: p.End, Countdown: c}
}
