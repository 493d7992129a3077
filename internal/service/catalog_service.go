package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/immxrtalbeast/movienight/internal/catalog"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
	"golang.org/x/sync/singleflight"
)

const (
	suggestionSeedFavorites = 5
	suggestionGenres        = 3
	maxSuggestions          = 8
)

// CatalogClient is the subset of the TMDB client the catalog service needs.
type CatalogClient interface {
	Search(ctx context.Context, query string, searchType catalog.SearchType) ([]catalog.Item, error)
	Details(ctx context.Context, id int64, mediaType string) (*catalog.Details, error)
	Recommendations(ctx context.Context, id int64, mediaType string) ([]catalog.Item, error)
	Discover(ctx context.Context, genreIDs []int, mediaType string) ([]catalog.Item, error)
}

type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// CatalogService answers catalog lookups. Every upstream failure degrades to
// an empty result.
type CatalogService struct {
	rooms     repository.RoomRepository
	favorites repository.FavoriteRepository
	client    CatalogClient
	cache     CatalogCache
	group     singleflight.Group
	log       *slog.Logger
}

// NewCatalogService builds the service. client and cache may be nil: without a
// client every lookup is empty, without a cache every lookup goes upstream.
func NewCatalogService(
	rooms repository.RoomRepository,
	favorites repository.FavoriteRepository,
	client CatalogClient,
	cache CatalogCache,
	log *slog.Logger,
) *CatalogService {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogService{
		rooms:     rooms,
		favorites: favorites,
		client:    client,
		cache:     cache,
		log:       log,
	}
}

func (s *CatalogService) Search(ctx context.Context, query string, searchType catalog.SearchType) []catalog.Item {
	const op = "service.catalog.search"

	query = strings.TrimSpace(query)
	if query == "" || s.client == nil {
		return []catalog.Item{}
	}
	key := fmt.Sprintf("search:%s:%s", searchType, strings.ToLower(query))

	items, err := cached(ctx, s, key, func(ctx context.Context) ([]catalog.Item, error) {
		return s.client.Search(ctx, query, searchType)
	})
	if err != nil {
		s.log.Warn("catalog search failed", slog.String("op", op), slog.String("query", query), sl.Err(err))
		return []catalog.Item{}
	}
	return items
}

func (s *CatalogService) Details(ctx context.Context, media domain.MediaRef) *catalog.Details {
	const op = "service.catalog.details"

	id, err := strconv.ParseInt(media.ID, 10, 64)
	if err != nil || s.client == nil {
		return nil
	}

	details, err := cached(ctx, s, "details:"+media.Key(), func(ctx context.Context) (*catalog.Details, error) {
		return s.client.Details(ctx, id, string(media.Type))
	})
	if err != nil {
		s.log.Warn("catalog details failed", slog.String("op", op), slog.String("media", media.Key()), sl.Err(err))
		return nil
	}
	return details
}

// Recommendations suggests titles based on the earliest favorite of role.
func (s *CatalogService) Recommendations(ctx context.Context, roomID string, role domain.Role) ([]catalog.Item, error) {
	const op = "service.catalog.recommendations"

	if err := requireRole("role", role); err != nil {
		return nil, err
	}
	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favorites.ListByRoom(ctx, roomID, role)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 || s.client == nil {
		return []catalog.Item{}, nil
	}

	seed := favorites[len(favorites)-1].Ref()
	id, err := strconv.ParseInt(seed.ID, 10, 64)
	if err != nil {
		return []catalog.Item{}, nil
	}

	items, err := cached(ctx, s, "recommendations:"+seed.Key(), func(ctx context.Context) ([]catalog.Item, error) {
		return s.client.Recommendations(ctx, id, string(seed.Type))
	})
	if err != nil {
		s.log.Warn("catalog recommendations failed",
			slog.String("op", op),
			slog.String("room_id", roomID),
			slog.String("media", seed.Key()),
			sl.Err(err),
		)
		return []catalog.Item{}, nil
	}
	return items, nil
}

// Suggestions discovers movies in the genres the room favors most, leaving
// out titles already favorited.
func (s *CatalogService) Suggestions(ctx context.Context, roomID string) ([]catalog.Item, error) {
	const op = "service.catalog.suggestions"

	roomID, err := requireRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favorites.ListByRoom(ctx, roomID, "")
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 || s.client == nil {
		return []catalog.Item{}, nil
	}

	seeds := favorites
	if len(seeds) > suggestionSeedFavorites {
		seeds = seeds[:suggestionSeedFavorites]
	}
	counts := make(map[int]int)
	var order []int
	for _, f := range seeds {
		details := s.Details(ctx, f.Ref())
		if details == nil {
			continue
		}
		for _, g := range details.Genres {
			if counts[g.ID] == 0 {
				order = append(order, g.ID)
			}
			counts[g.ID]++
		}
	}
	if len(order) == 0 {
		return []catalog.Item{}, nil
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > suggestionGenres {
		order = order[:suggestionGenres]
	}

	key := "discover:movie:" + joinInts(order)
	items, err := cached(ctx, s, key, func(ctx context.Context) ([]catalog.Item, error) {
		return s.client.Discover(ctx, order, string(domain.MediaTypeMovie))
	})
	if err != nil {
		s.log.Warn("catalog discover failed", slog.String("op", op), slog.String("room_id", roomID), sl.Err(err))
		return []catalog.Item{}, nil
	}

	favorited := make(map[string]struct{}, len(favorites))
	for _, f := range favorites {
		favorited[f.Ref().Key()] = struct{}{}
	}
	out := make([]catalog.Item, 0, maxSuggestions)
	for _, item := range items {
		ref := domain.MediaRef{ID: strconv.FormatInt(item.ID, 10), Type: domain.MediaTypeMovie}
		if _, ok := favorited[ref.Key()]; ok {
			continue
		}
		out = append(out, item)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

// cached runs fetch through the cache and collapses concurrent identical
// lookups into one upstream call.
func cached[T any](ctx context.Context, s *CatalogService, key string, fetch func(context.Context) (T, error)) (T, error) {
	var value T
	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, &value)
		if err != nil {
			s.log.Warn("catalog cache read failed", slog.String("key", key), sl.Err(err))
		} else if found {
			return value, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, fetched); err != nil {
				s.log.Warn("catalog cache write failed", slog.String("key", key), sl.Err(err))
			}
		}
		return fetched, nil
	})
	if err != nil {
		return value, err
	}
	return v.(T), nil
}

func joinInts(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
