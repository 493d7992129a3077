package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

type VoteService struct {
	rooms     repository.RoomRepository
	favorites repository.FavoriteRepository
	votes     repository.VoteRepository
	timeline  repository.TimelineRepository
	publisher Publisher
	window    domain.VotingWindow
	minVotes  int
	now       func() time.Time
	log       *slog.Logger
}

type VoteOption func(*VoteService)

// WithVotingWindow overrides the weekly anchor.
func WithVotingWindow(w domain.VotingWindow) VoteOption {
	return func(s *VoteService) {
		s.window = w
	}
}

// WithMinVotes overrides the number of votes needed before a winner is reported.
func WithMinVotes(n int) VoteOption {
	return func(s *VoteService) {
		if n > 0 {
			s.minVotes = n
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) VoteOption {
	return func(s *VoteService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewVoteService(
	rooms repository.RoomRepository,
	favorites repository.FavoriteRepository,
	votes repository.VoteRepository,
	timeline repository.TimelineRepository,
	publisher Publisher,
	log *slog.Logger,
	opts ...VoteOption,
) *VoteService {
	if log == nil {
		log = slog.Default()
	}
	s := &VoteService{
		rooms:     rooms,
		favorites: favorites,
		votes:     votes,
		timeline:  timeline,
		publisher: publisherOrNop(publisher),
		window:    domain.DefaultVotingWindow,
		minVotes:  domain.MinVotesForWinner,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *VoteService) CurrentPeriod(now time.Time) domain.Period {
	return s.window.PeriodAt(now)
}

func (s *VoteService) Countdown(now time.Time) domain.Countdown {
	return s.window.CountdownAt(now)
}

// CastVote records voter's pick for the current period. It reports
// CastAlreadyVoted when the voter already voted in this period, including when
// a concurrent cast wins the race at the storage layer, and CastNotInFavorites
// when the title is not one of the room's favorites. Neither writes a row.
func (s *VoteService) CastVote(ctx context.Context, roomID string, voter domain.Role, media domain.MediaRef) (*domain.CastResult, error) {
	const op = "service.vote.cast"

	if err := requireRole("voter", voter); err != nil {
		return nil, err
	}
	if err := media.Validate(); err != nil {
		return nil, err
	}
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", roomID),
		slog.String("voter", string(voter)),
		slog.String("media", media.Key()),
	)

	now := s.now().UTC()
	period := s.window.PeriodAt(now)

	if _, err := s.votes.FindByVoter(ctx, roomID, voter, period); err == nil {
		log.Info("voter already voted this period")
		return &domain.CastResult{Status: domain.CastAlreadyVoted}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to check existing vote", sl.Err(err))
		return nil, err
	}

	fav, err := s.favorites.FindByMedia(ctx, roomID, media)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("media is not in favorites")
			return &domain.CastResult{Status: domain.CastNotInFavorites}, nil
		}
		log.Error("failed to check favorites", sl.Err(err))
		return nil, err
	}

	vote := domain.NewVote(roomID, voter, media, period, now)
	if err := s.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrVoteExists) {
			log.Info("concurrent vote from the same voter")
			return &domain.CastResult{Status: domain.CastAlreadyVoted}, nil
		}
		log.Error("failed to store vote", sl.Err(err))
		return nil, err
	}

	log.Info("vote cast", slog.Time("period_start", period.Start))
	s.publisher.Publish(domain.NewChangeEvent(domain.ChangeInsert, domain.TableVotes, roomID, vote.ID.String()))

	entry := domain.NewTimelineEntry(roomID, domain.TimelineVoteCast, voter, domain.Media{
		MediaRef:   media,
		Title:      fav.Title,
		PosterPath: fav.PosterPath,
	}, "")
	if err := s.timeline.Append(ctx, entry); err != nil {
		log.Warn("failed to append timeline entry", sl.Err(err))
	} else {
		s.publisher.Publish(domain.NewChangeEvent(domain.ChangeInsert, domain.TableTimeline, roomID, entry.ID.String()))
	}

	return &domain.CastResult{Status: domain.CastAccepted, Vote: vote}, nil
}

func (s *VoteService) HasVoted(ctx context.Context, roomID string, voter domain.Role) (bool, error) {
	if err := requireRole("voter", voter); err != nil {
		return false, err
	}
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return false, err
	}

	_, err = s.votes.FindByVoter(ctx, roomID, voter, s.window.PeriodAt(s.now()))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Votes returns the current period's votes, most recent first.
func (s *VoteService) Votes(ctx context.Context, roomID string) ([]*domain.Vote, error) {
	_, votes, err := s.periodVotes(ctx, roomID)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(votes)-1; i < j; i, j = i+1, j-1 {
		votes[i], votes[j] = votes[j], votes[i]
	}
	return votes, nil
}

// Tally counts the current period's votes per title, ranked the way Winner
// picks, so the first entry is the winner once enough votes are in.
func (s *VoteService) Tally(ctx context.Context, roomID string) ([]domain.TallyEntry, error) {
	roomID, votes, err := s.periodVotes(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return []domain.TallyEntry{}, nil
	}

	favs, err := s.favorites.ListByRoom(ctx, roomID, "")
	if err != nil {
		s.log.Error("failed to load favorites", slog.String("op", "service.vote.tally"), sl.Err(err))
		return nil, err
	}
	return domain.RankTally(domain.Tally(votes), favs), nil
}

// Winner returns the current period's pick, or nil while fewer than the
// minimum number of votes have been cast. On the anchor day the pick is marked
// as tonight's.
func (s *VoteService) Winner(ctx context.Context, roomID string) (*domain.Winner, error) {
	const op = "service.vote.winner"

	roomID, votes, err := s.periodVotes(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if len(votes) < s.minVotes {
		return nil, nil
	}

	favs, err := s.favorites.ListByRoom(ctx, roomID, "")
	if err != nil {
		s.log.Error("failed to load favorites", slog.String("op", op), sl.Err(err))
		return nil, err
	}

	winner := domain.ResolveWinner(domain.Tally(votes), favs, s.minVotes)
	if winner != nil {
		winner.Tonight = s.window.IsAnchorDay(s.now())
	}
	return winner, nil
}

func (s *VoteService) periodVotes(ctx context.Context, roomID string) (string, []*domain.Vote, error) {
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return "", nil, err
	}
	votes, err := s.votes.ListInPeriod(ctx, roomID, s.window.PeriodAt(s.now()))
	return roomID, votes, err
}
