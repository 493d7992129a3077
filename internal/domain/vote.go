package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one participant's pick for a voting period. PeriodStart is derived
// from CreatedAt when the vote is cast and lets storage enforce one vote per
// (room, voter, period).
type Vote struct {
	ID          uuid.UUID
	RoomID      string
	Voter       Role
	MediaID     string
	MediaType   MediaType
	Value       int
	PeriodStart time.Time
	CreatedAt   time.Time
}

func NewVote(roomID string, voter Role, media MediaRef, period Period, now time.Time) *Vote {
	return &Vote{
		ID:          uuid.New(),
		RoomID:      roomID,
		Voter:       voter,
		MediaID:     media.ID,
		MediaType:   media.Type,
		Value:       1,
		PeriodStart: period.Start,
		CreatedAt:   now.UTC(),
	}
}

func (v *Vote) Ref() MediaRef {
	return MediaRef{ID: v.MediaID, Type: v.MediaType}
}

type CastStatus string

const (
	CastAccepted       CastStatus = "accepted"
	CastAlreadyVoted   CastStatus = "already_voted"
	CastNotInFavorites CastStatus = "not_in_favorites"
)

// CastResult is the outcome of casting a vote. Vote is set only when Status is
// CastAccepted.
type CastResult struct {
	Status CastStatus
	Vote   *Vote
}
