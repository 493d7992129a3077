package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// SearchType selects the TMDB search endpoint.
type SearchType string

const (
	SearchMovie SearchType = "movie"
	SearchTV    SearchType = "tv"
	SearchMulti SearchType = "multi"
)

// ParseSearchType maps user input to a search type. Empty input means multi.
func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchMulti:
		return SearchMulti, nil
	case SearchMovie:
		return SearchMovie, nil
	case SearchTV:
		return SearchTV, nil
	default:
		return "", fmt.Errorf("unknown search type %q", s)
	}
}

// Item is a single title as returned by search, recommendation and discover
// endpoints.
type Item struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	PosterURL    string  `json:"poster_url,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// DisplayTitle returns the movie title or the show name.
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details is the full payload of a movie or show.
type Details struct {
	Item
	Genres  []Genre `json:"genres"`
	Runtime int     `json:"runtime,omitempty"`
	Tagline string  `json:"tagline,omitempty"`
	Status  string  `json:"status,omitempty"`
}

type page struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithImageBaseURL sets the prefix used to build poster URLs.
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.imageBaseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: DefaultImageBaseURL,
		language:     strings.TrimSpace(language),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search runs a title search. Multi searches drop people from the results.
func (c *Client) Search(ctx context.Context, query string, searchType SearchType) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if searchType == "" {
		searchType = SearchMulti
	}
	params := url.Values{}
	params.Set("query", query)

	var payload page
	if err := c.get(ctx, "/search/"+string(searchType), params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s search: %w", searchType, err)
	}

	items := make([]Item, 0, len(payload.Results))
	for _, item := range payload.Results {
		if searchType != SearchMulti {
			item.MediaType = string(searchType)
		}
		if item.MediaType != "movie" && item.MediaType != "tv" {
			continue
		}
		items = append(items, c.normalize(item))
	}
	return items, nil
}

// Details fetches a movie or show by id.
func (c *Client) Details(ctx context.Context, id int64, mediaType string) (*Details, error) {
	if err := checkTitle(id, mediaType); err != nil {
		return nil, err
	}
	var payload Details
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s details: %w", mediaType, err)
	}
	payload.MediaType = mediaType
	payload.Item = c.normalize(payload.Item)
	return &payload, nil
}

// Recommendations returns titles TMDB recommends for the given one.
func (c *Client) Recommendations(ctx context.Context, id int64, mediaType string) ([]Item, error) {
	if err := checkTitle(id, mediaType); err != nil {
		return nil, err
	}
	var payload page
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/recommendations", mediaType, id), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s recommendations: %w", mediaType, err)
	}
	return c.items(payload.Results, mediaType), nil
}

// Discover lists popular titles matching any of the genres.
func (c *Client) Discover(ctx context.Context, genreIDs []int, mediaType string) ([]Item, error) {
	if mediaType != "movie" && mediaType != "tv" {
		return nil, fmt.Errorf("unsupported media type %q", mediaType)
	}
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	if len(genreIDs) > 0 {
		ids := make([]string, 0, len(genreIDs))
		for _, id := range genreIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		params.Set("with_genres", strings.Join(ids, "|"))
	}

	var payload page
	if err := c.get(ctx, "/discover/"+mediaType, params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb %s discover: %w", mediaType, err)
	}
	return c.items(payload.Results, mediaType), nil
}

// PosterURL expands a TMDB poster path. Empty paths stay empty.
func (c *Client) PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) items(results []Item, mediaType string) []Item {
	items := make([]Item, 0, len(results))
	for _, item := range results {
		item.MediaType = mediaType
		items = append(items, c.normalize(item))
	}
	return items
}

// normalize fills the poster URL and copies a show's name into Title so every
// item carries a title.
func (c *Client) normalize(item Item) Item {
	item.Title = item.DisplayTitle()
	item.PosterURL = c.PosterURL(item.PosterPath)
	return item
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("returned %d (latency=%v)", resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkTitle(id int64, mediaType string) error {
	if id <= 0 {
		return errors.New("title id must be positive")
	}
	if mediaType != "movie" && mediaType != "tv" {
		return fmt.Errorf("unsupported media type %q", mediaType)
	}
	return nil
}
