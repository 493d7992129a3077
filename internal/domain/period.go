package domain

import (
	"fmt"
	"time"
)

// PeriodLength is the length of every voting period.
const PeriodLength = 7 * 24 * time.Hour

// Period is a half-open voting window [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// VotingWindow anchors weekly voting periods to a weekday and hour in UTC.
// Both participants compute the same period regardless of their local zones.
type VotingWindow struct {
	Weekday time.Weekday
	Hour    int
}

// DefaultVotingWindow opens a new period every Thursday at 00:00 UTC.
var DefaultVotingWindow = VotingWindow{Weekday: time.Thursday, Hour: 0}

func NewVotingWindow(weekday time.Weekday, hour int) (VotingWindow, error) {
	if weekday < time.Sunday || weekday > time.Saturday {
		return VotingWindow{}, NewValidationError("voting.anchor_weekday", fmt.Sprintf("%d is out of range", weekday))
	}
	if hour < 0 || hour > 23 {
		return VotingWindow{}, NewValidationError("voting.anchor_hour", fmt.Sprintf("%d is out of range", hour))
	}
	return VotingWindow{Weekday: weekday, Hour: hour}, nil
}

// PeriodAt returns the period containing now: Start is the latest anchor at or
// before now and End is Start plus seven days.
func (w VotingWindow) PeriodAt(now time.Time) Period {
	now = now.UTC()

	days := (int(now.Weekday()) - int(w.Weekday) + 7) % 7
	start := time.Date(now.Year(), now.Month(), now.Day()-days, w.Hour, 0, 0, 0, time.UTC)
	if start.After(now) {
		start = start.AddDate(0, 0, -7)
	}

	return Period{Start: start, End: start.Add(PeriodLength)}
}

// Countdown is the time left until the next period opens, split for display.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func (w VotingWindow) CountdownAt(now time.Time) Countdown {
	left := w.PeriodAt(now).End.Sub(now.UTC())
	if left < 0 {
		left = 0
	}

	total := int(left / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// IsAnchorDay reports whether now falls on the anchor weekday, when the
// leading pick becomes the night's pick.
func (w VotingWindow) IsAnchorDay(now time.Time) bool {
	return now.UTC().Weekday() == w.Weekday
}
