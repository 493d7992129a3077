package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/movienight/internal/api/http/converter"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/service"
)

type FavoriteController struct {
	favorites service.FavoriteInteractor
	log       *slog.Logger
}

func NewFavoriteController(favorites service.FavoriteInteractor, log *slog.Logger) *FavoriteController {
	return &FavoriteController{favorites: favorites, log: log}
}

func (c *FavoriteController) ListFavorites(ctx *gin.Context) {
	var role domain.Role
	if raw := ctx.Query("role"); raw != "" {
		parsed, err := domain.ParseRole(raw)
		if err != nil {
			writeError(ctx, c.log, err)
			return
		}
		role = parsed
	}

	favs, err := c.favorites.ListFavorites(ctx.Request.Context(), ctx.Param("roomID"), role)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"favorites": converter.FavoritesToApi(favs)})
}

// AddFavorite answers 201 for a new favorite and 200 with the stored record
// when the title was already favorited.
func (c *FavoriteController) AddFavorite(ctx *gin.Context) {
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

	fav, created, err := c.favorites.AddFavorite(ctx.Request.Context(), ctx.Param("roomID"), role, req.MediaInput)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, gin.H{"favorite": converter.FavoriteToApi(fav), "created": created})
}

func (c *FavoriteController) RemoveFavorite(ctx *gin.Context) {
	media, err := domain.NewMediaRef(ctx.Param("mediaID"), ctx.Param("mediaType"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	removed, err := c.favorites.RemoveFavorite(ctx.Request.Context(), ctx.Param("roomID"), media)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}
