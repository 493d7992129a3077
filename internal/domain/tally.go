package domain

import (
	"slices"
	"sort"
	"time"
)

// MinVotesForWinner is the number of votes a period needs before a winner is
// reported, so one participant's early pick does not decide the night alone.
const MinVotesForWinner = 2

// TallyEntry is the vote count for one title within a period.
type TallyEntry struct {
	Media MediaRef
	Count int

	firstVote time.Time
	order     int
}

// Tally counts votes per title. Entries are ordered by count, highest first;
// equal counts keep the order in which their first vote was encountered. Use
// RankTally to apply the favorites tie-break.
func Tally(votes []*Vote) []TallyEntry {
	index := make(map[string]int, len(votes))
	entries := make([]TallyEntry, 0, len(votes))

	for _, v := range votes {
		if v == nil {
			continue
		}
		key := v.Ref().Key()
		i, ok := index[key]
		if !ok {
			index[key] = len(entries)
			entries = append(entries, TallyEntry{
				Media:     v.Ref(),
				firstVote: v.CreatedAt,
				order:     len(entries),
			})
			i = len(entries) - 1
		}
		entries[i].Count += max(v.Value, 1)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Winner is the title picked for the period. Tonight is set on the anchor day,
// when the leading title is the one being watched rather than a running lead.
type Winner struct {
	Media    MediaRef
	Count    int
	Total    int
	Favorite *Favorite
	Tonight  bool
}

// RankTally orders entries the way ResolveWinner picks among them: by count,
// then a title still in favorites ahead of one that is not, then the earliest
// favorite, then the earliest first vote. The first entry is the winner
// whenever one exists.
func RankTally(entries []TallyEntry, favorites []*Favorite) []TallyEntry {
	return rank(entries, favoritesByKey(favorites))
}

// ResolveWinner picks the top ranked title. It returns nil when fewer than
// minVotes votes were cast.
func ResolveWinner(entries []TallyEntry, favorites []*Favorite, minVotes int) *Winner {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	if len(entries) == 0 || total < minVotes {
		return nil
	}

	byKey := favoritesByKey(favorites)
	top := rank(entries, byKey)[0]
	return &Winner{
		Media:    top.Media,
		Count:    top.Count,
		Total:    total,
		Favorite: byKey[top.Media.Key()],
	}
}

func favoritesByKey(favorites []*Favorite) map[string]*Favorite {
	byKey := make(map[string]*Favorite, len(favorites))
	for _, f := range favorites {
		if f == nil {
			continue
		}
		if cur, ok := byKey[f.Ref().Key()]; !ok || f.CreatedAt.Before(cur.CreatedAt) {
			byKey[f.Ref().Key()] = f
		}
	}
	return byKey
}

func rank(entries []TallyEntry, favorites map[string]*Favorite) []TallyEntry {
	ranked := slices.Clone(entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return beats(ranked[i], ranked[j], favorites)
	})
	return ranked
}

func beats(a, b TallyEntry, favorites map[string]*Favorite) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}

	fa, fb := favorites[a.Media.Key()], favorites[b.Media.Key()]
	switch {
	case fa != nil && fb == nil:
		return true
	case fa == nil && fb != nil:
		return false
	case fa != nil && fb != nil && !fa.CreatedAt.Equal(fb.CreatedAt):
		return fa.CreatedAt.Before(fb.CreatedAt)
	}

	if !a.firstVote.Equal(b.firstVote) {
		return a.firstVote.Before(b.firstVote)
	}
	return a.order < b.order
}
