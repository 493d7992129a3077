package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/movienight/internal/api/http/converter"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/service"
)

type RoomController struct {
	rooms service.RoomInteractor
	log   *slog.Logger
}

func NewRoomController(rooms service.RoomInteractor, log *slog.Logger) *RoomController {
	return &RoomController{rooms: rooms, log: log}
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	room, err := c.rooms.CreateRoom(ctx.Request.Context())
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"room": converter.RoomToApi(room)})
}

// EnsureRoom opens the room with the given token, creating it on first visit.
func (c *RoomController) EnsureRoom(ctx *gin.Context) {
	room, err := c.rooms.EnsureRoom(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) GetRoom(ctx *gin.Context) {
	room, err := c.rooms.GetRoom(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

// PutSession remembers the room and last chosen role in long-lived cookies.
func (c *RoomController) PutSession(ctx *gin.Context) {
	type request struct {
		RoomID string `json:"room_id" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "invalid request body", err)
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	room, err := c.rooms.EnsureRoom(ctx.Request.Context(), req.RoomID)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(roomCookie, room.ID, sessionMaxAge, "/", "", false, true)
	ctx.SetCookie(roleCookie, role.String(), sessionMaxAge, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"room_id": room.ID, "role": role})
}

func (c *RoomController) GetSession(ctx *gin.Context) {
	roomID, err := ctx.Cookie(roomCookie)
	if err != nil || roomID == "" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no session"})
		return
	}
	resp := gin.H{"room_id": roomID}
	if raw, err := ctx.Cookie(roleCookie); err == nil {
		if role, err := domain.ParseRole(raw); err == nil {
			resp["role"] = role
		}
	}
	ctx.JSON(http.StatusOK, resp)
}
