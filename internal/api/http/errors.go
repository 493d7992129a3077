package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

const (
	roomCookie     = "nt_room_id"
	roleCookie     = "role"
	sessionMaxAge  = 365 * 24 * 60 * 60
	maxTimelineLen = 500
)

// writeError maps service errors onto HTTP statuses.
func writeError(ctx *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrNotRecipient):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Error("request failed",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.FullPath()),
			sl.Err(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// resolveRole parses explicit, falling back to the session cookie.
func resolveRole(ctx *gin.Context, explicit string) (domain.Role, error) {
	if explicit == "" {
		if cookie, err := ctx.Cookie(roleCookie); err == nil {
			explicit = cookie
		}
	}
	return domain.ParseRole(explicit)
}

func badRequest(ctx *gin.Context, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, body)
}
