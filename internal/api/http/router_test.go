package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/movienight/internal/cache"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/realtime"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/internal/service"
	"github.com/immxrtalbeast/movienight/lib/logger/handlers/slogdiscard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	hub    *realtime.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slogdiscard.NewDiscardLogger()

	rooms := repository.NewInMemoryRoomRepository()
	favorites := repository.NewInMemoryFavoriteRepository()
	votes := repository.NewInMemoryVoteRepository()
	timeline := repository.NewInMemoryTimelineRepository()
	hub := realtime.NewHub(log)

	roomSvc := service.NewRoomService(rooms, log)
	origins := []string{"http://localhost:3000"}
	router := SetupRouter(origins, Controllers{
		Rooms:     NewRoomController(roomSvc, log),
		Favorites: NewFavoriteController(service.NewFavoriteService(rooms, favorites, timeline, hub, log), log),
		Votes:     NewVoteController(service.NewVoteService(rooms, favorites, votes, timeline, hub, log), log),
		Messages: NewMessageController(service.NewMessageService(rooms,
			repository.NewInMemoryMessageRepository(), repository.NewInMemoryNoteRepository(), hub, log), log),
		Timeline: NewTimelineController(service.NewTimelineService(rooms, timeline, hub, log), log),
		Catalog:  NewCatalogController(service.NewCatalogService(rooms, favorites, nil, nil, log), log),
		Stream:   NewStreamController(roomSvc, hub, origins, log),
		Health:   NewHealthController(nil, log),
	})
	return &testServer{router: router, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type stubCacheStatus struct {
	err   error
	stats cache.Stats
}

func (s stubCacheStatus) Ping(context.Context) error { return s.err }
func (s stubCacheStatus) Stats() cache.Stats { return s.stats }

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"enabled": false}, decode(t, w)["cache"])
}

func TestHealthzReportsCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := slogdiscard.NewDiscardLogger()

	up := SetupRouter([]string{"http://localhost:3000"}, Controllers{Health: NewHealthController(stubCacheStatus{stats: cache.Stats{Hits: 3, Misses: 1, HitRate: 75}}, log)})
	w := httptest.NewRecorder()
	up.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	status := decode(t, w)["cache"].(map[string]any)
	assert.Equal(t, true, status["reachable"])
	assert.Equal(t, float64(3), status["stats"].(map[string]any)["hits"])

	down := SetupRouter([]string{"http://localhost:3000"}, Controllers{Health: NewHealthController(stubCacheStatus{err: errors.New("connection refused")}, log)})
	w = httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["cache"].(map[string]any)["reachable"])
}

func TestCastVoteStatuses(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/rooms/r1", nil).Code)

	w := s.do(t, http.MethodPost, "/api/rooms/r1/favorites", map[string]any{
		"role": "Dherru", "media_id": "42", "media_type": "movie", "title": "Dune",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/rooms/r1/votes", map[string]string{
		"voter": "Dherru", "media_id": "42", "media_type": "movie",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "accepted", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, "/api/rooms/r1/votes", map[string]string{
		"voter": "Dherru", "media_id": "42", "media_type": "movie",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already_voted", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, "/api/rooms/r1/votes", map[string]string{
		"voter": "Nivi", "media_id": "99", "media_type": "movie",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "not_in_favorites", decode(t, w)["status"])

	w = s.do(t, http.MethodGet, "/api/rooms/r1/votes/status?voter=nivi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["has_voted"])

	w = s.do(t, http.MethodGet, "/api/rooms/r1/winner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "winner")
	assert.Nil(t, body["winner"])

	w = s.do(t, http.MethodGet, "/api/rooms/r1/tally", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["tally"], 1)

	w = s.do(t, http.MethodPost, "/api/rooms/r1/votes", map[string]string{
		"voter": "Nivi", "media_id": "42", "media_type": "movie",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/rooms/r1/winner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	winner := decode(t, w)["winner"].(map[string]any)
	assert.Equal(t, "42", winner["media_id"])
	assert.Equal(t, time.Now().UTC().Weekday() == time.Thursday, winner["tonight"])
}

func TestFavoritesLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPut, "/api/rooms/r1", nil)
	fav := map[string]any{"role": "Nivi", "media_id": "7", "media_type": "Movie", "title": "Heat"}

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/rooms/r1/favorites", fav).Code)
	w := s.do(t, http.MethodPost, "/api/rooms/r1/favorites", fav)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["created"])

	w = s.do(t, http.MethodGet, "/api/rooms/r1/favorites?role=Nivi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["favorites"], 1)

	w = s.do(t, http.MethodDelete, "/api/rooms/r1/favorites/MOVIE/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["removed"])

	w = s.do(t, http.MethodGet, "/api/rooms/r1/favorites", nil)
	assert.Empty(t, decode(t, w)["favorites"])
}

func TestErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPut, "/api/rooms/r1", nil)

	w := s.do(t, http.MethodPost, "/api/rooms/r1/favorites", map[string]any{"role": "Nivi", "media_type": "movie"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/rooms/r1/favorites", map[string]any{"role": "guest", "media_id": "1", "media_type": "movie"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/rooms/nowhere/favorites", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/rooms/r1/votes", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionCookies(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/session", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/session", map[string]string{"room_id": "Date1", "role": "nivi"})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)

	w = s.do(t, http.MethodGet, "/api/session", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "date1", body["room_id"])
	assert.Equal(t, "Nivi", body["role"])

	// The role cookie stands in for an explicit voter.
	w = s.do(t, http.MethodGet, "/api/rooms/date1/votes/status", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nivi", decode(t, w)["voter"])
}

func TestPeriod(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/period", nil)
	require.Equal(t, http.StatusOK, w.Code)

	period := decode(t, w)["period"].(map[string]any)
	start, err := time.Parse(time.RFC3339, period["start"].(string))
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, start.Weekday())
	assert.Contains(t, period, "countdown")
}

func TestNoteReveal(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPut, "/api/rooms/r1", nil)

	w := s.do(t, http.MethodPost, "/api/rooms/r1/notes", map[string]string{"sender": "Dherru", "text": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["note"].(map[string]any)["id"].(string)

	w = s.do(t, http.MethodGet, "/api/rooms/r1/notes?viewer=Nivi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	notes := decode(t, w)["notes"].([]any)
	require.Len(t, notes, 1)
	assert.Equal(t, true, notes[0].(map[string]any)["sealed"])

	w = s.do(t, http.MethodPost, "/api/rooms/r1/notes/"+id+"/reveal?viewer=Dherru", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/rooms/r1/notes/"+id+"/reveal?viewer=Nivi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	note := decode(t, w)["note"].(map[string]any)
	assert.Equal(t, "hi", note["text"])
	assert.Equal(t, false, note["sealed"])

	w = s.do(t, http.MethodPost, "/api/rooms/r1/notes/not-a-uuid/reveal?viewer=Nivi", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogWithoutClientIsEmpty(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/catalog/search?q=dune", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["results"])
}

func TestStreamDeliversChanges(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPut, "/api/rooms/r1", nil)

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/rooms/r1/ws?tables=favorites"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.Subscribers("r1") == 1 }, time.Second, 10*time.Millisecond)

	w := s.do(t, http.MethodPost, "/api/rooms/r1/favorites", map[string]any{
		"role": "Dherru", "media_id": "42", "media_type": "movie", "title": "Dune",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event domain.ChangeEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, domain.TableFavorites, event.Table)
	assert.Equal(t, domain.ChangeInsert, event.Type)
	assert.Equal(t, "r1", event.RoomID)
}

func TestStreamRejectsUnknownTable(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPut, "/api/rooms/r1", nil)
	w := s.do(t, http.MethodGet, "/api/rooms/r1/ws?tables=users", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
