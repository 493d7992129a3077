package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/movienight/internal/api/http/converter"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/service"
)

type VoteController struct {
	votes service.VotingInteractor
	log   *slog.Logger
}

func NewVoteController(votes service.VotingInteractor, log *slog.Logger) *VoteController {
	return &VoteController{votes: votes, log: log}
}

func (c *VoteController) CurrentPeriod(ctx *gin.Context) {
	now := time.Now()
	ctx.JSON(http.StatusOK, gin.H{
		"period": converter.PeriodToApi(c.votes.CurrentPeriod(now), c.votes.Countdown(now)),
	})
}

func (c *VoteController) CastVote(ctx *gin.Context) {
	type request struct {
		Voter     string `json:"voter"`
		MediaID   string `json:"media_id" binding:"required"`
		MediaType string `json:"media_type" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "invalid request body", err)
		return
	}
	voter, err := resolveRole(ctx, req.Voter)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	media, err := domain.NewMediaRef(req.MediaID, req.MediaType)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}

	res, err := c.votes.CastVote(ctx.Request.Context(), ctx.Param("roomID"), voter, media)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}

	switch res.Status {
	case domain.CastAccepted:
		ctx.JSON(http.StatusCreated, gin.H{"status": res.Status, "vote": converter.VoteToApi(res.Vote)})
	case domain.CastNotInFavorites:
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": res.Status})
	default:
		ctx.JSON(http.StatusOK, gin.H{"status": res.Status})
	}
}

func (c *VoteController) ListVotes(ctx *gin.Context) {
	votes, err := c.votes.Votes(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"votes": converter.VotesToApi(votes)})
}

func (c *VoteController) VoteStatus(ctx *gin.Context) {
	voter, err := resolveRole(ctx, ctx.Query("voter"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	voted, err := c.votes.HasVoted(ctx.Request.Context(), ctx.Param("roomID"), voter)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"voter": voter, "has_voted": voted})
}

func (c *VoteController) Tally(ctx *gin.Context) {
	entries, err := c.votes.Tally(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tally": converter.TallyToApi(entries)})
}

// Winner answers with a null winner until enough votes are in.
func (c *VoteController) Winner(ctx *gin.Context) {
	winner, err := c.votes.Winner(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"winner": converter.WinnerToApi(winner)})
}
