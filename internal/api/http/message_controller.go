package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/api/http/converter"
	"github.com/immxrtalbeast/movienight/internal/service"
)

type MessageController struct {
	messages service.MessageInteractor
	log      *slog.Logger
}

func NewMessageController(messages service.MessageInteractor, log *slog.Logger) *MessageController {
	return &MessageController{messages: messages, log: log}
}

type sendRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text" binding:"required"`
}

func (c *MessageController) ListMessages(ctx *gin.Context) {
	msgs, err := c.messages.ListMessages(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": converter.MessagesToApi(msgs)})
}

func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req sendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "invalid request body", err)
		return
	}
	sender, err := resolveRole(ctx, req.Sender)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	msg, err := c.messages.SendMessage(ctx.Request.Context(), ctx.Param("roomID"), sender, req.Text)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": converter.MessageToApi(msg)})
}

func (c *MessageController) ListNotes(ctx *gin.Context) {
	viewer, err := resolveRole(ctx, ctx.Query("viewer"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	notes, err := c.messages.ListNotes(ctx.Request.Context(), ctx.Param("roomID"), viewer)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"notes": converter.NotesToApi(notes, viewer)})
}

func (c *MessageController) SendNote(ctx *gin.Context) {
	var req sendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "invalid request body", err)
		return
	}
	sender, err := resolveRole(ctx, req.Sender)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	note, err := c.messages.SendNote(ctx.Request.Context(), ctx.Param("roomID"), sender, req.Text)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"note": converter.NoteToApi(note, sender)})
}

func (c *MessageController) RevealNote(ctx *gin.Context) {
	noteID, err := uuid.Parse(ctx.Param("noteID"))
	if err != nil {
		badRequest(ctx, "invalid note id", nil)
		return
	}
	viewer, err := resolveRole(ctx, ctx.Query("viewer"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	note, err := c.messages.RevealNote(ctx.Request.Context(), ctx.Param("roomID"), noteID, viewer)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"note": converter.NoteToApi(note, viewer)})
}
