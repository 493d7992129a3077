package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/realtime"
	"github.com/immxrtalbeast/movienight/internal/service"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// StreamController pushes room change events to websocket clients. Clients
// re-read the table named in each event.
type StreamController struct {
	rooms    service.RoomInteractor
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewStreamController(rooms service.RoomInteractor, hub *realtime.Hub, allowOrigins []string, log *slog.Logger) *StreamController {
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[o] = struct{}{}
	}
	return &StreamController{
		rooms: rooms,
		hub:   hub,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

func (c *StreamController) Stream(ctx *gin.Context) {
	var tables []domain.Table
	if raw := ctx.Query("tables"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			t, ok := domain.ParseTable(strings.TrimSpace(name))
			if !ok {
				badRequest(ctx, "unknown table "+name, nil)
				return
			}
			tables = append(tables, t)
		}
	}

	room, err := c.rooms.GetRoom(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Warn("failed to upgrade connection", slog.String("room_id", room.ID), sl.Err(err))
		return
	}

	sub := c.hub.Subscribe(room.ID, tables...)
	log := c.log.With(slog.String("room_id", room.ID), slog.String("subscription_id", sub.ID))
	log.Info("stream opened", slog.Int("subscribers", c.hub.Subscribers(room.ID)))

	go c.readLoop(conn, sub)
	c.writeLoop(conn, sub)
	log.Info("stream closed")
}

// readLoop drains client frames so pongs and close frames are processed.
func (c *StreamController) readLoop(conn *websocket.Conn, sub *realtime.Subscription) {
	defer sub.Close()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop forwards events until the subscription closes or a write fails.
// Pings go out from their own goroutine through WriteControl, which gorilla
// allows next to a concurrent writer.
func (c *StreamController) writeLoop(conn *websocket.Conn, sub *realtime.Subscription) {
	done := make(chan struct{})
	defer func() {
		close(done)
		sub.Close()
		conn.Close()
	}()
	go pingLoop(conn, sub, done)

	for event := range sub.All() {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
}

func pingLoop(conn *websocket.Conn, sub *realtime.Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				sub.Close()
				return
			}
		}
	}
}
