package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/movienight/internal/api/http/converter"
	"github.com/immxrtalbeast/movienight/internal/service"
)

type TimelineController struct {
	timeline service.TimelineInteractor
	log      *slog.Logger
}

func NewTimelineController(timeline service.TimelineInteractor, log *slog.Logger) *TimelineController {
	return &TimelineController{timeline: timeline, log: log}
}

func (c *TimelineController) Timeline(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(ctx, "invalid limit", nil)
			return
		}
		limit = min(n, maxTimelineLen)
	}
	entries, err := c.timeline.Timeline(ctx.Request.Context(), ctx.Param("roomID"), limit)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"timeline": converter.TimelineToApi(entries)})
}

// SaveMemory records a watched title.
func (c *TimelineController) SaveMemory(ctx *gin.Context) {
	type request struct {
		Role string `json:"role"`
		service.MediaInput
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "invalid request body", err)
		return
	}
	role, err := resolveRole(ctx, req.Role)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	entry, err := c.timeline.SaveMemory(ctx.Request.Context(), ctx.Param("roomID"), role, req.MediaInput)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"entry": converter.TimelineEntryToApi(entry)})
}
