package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/movienight/internal/catalog"
	"github.com/immxrtalbeast/movienight/internal/domain"
	"github.com/immxrtalbeast/movienight/internal/service"
)

type CatalogController struct {
	catalog service.CatalogInteractor
	log     *slog.Logger
}

func NewCatalogController(catalog service.CatalogInteractor, log *slog.Logger) *CatalogController {
	return &CatalogController{catalog: catalog, log: log}
}

func (c *CatalogController) Search(ctx *gin.Context) {
	searchType, err := catalog.ParseSearchType(ctx.Query("type"))
	if err != nil {
		badRequest(ctx, "invalid search type", err)
		return
	}
	items := c.catalog.Search(ctx.Request.Context(), ctx.Query("q"), searchType)
	ctx.JSON(http.StatusOK, gin.H{"results": items})
}

func (c *CatalogController) Details(ctx *gin.Context) {
	media, err := domain.NewMediaRef(ctx.Param("mediaID"), ctx.Param("mediaType"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	details := c.catalog.Details(ctx.Request.Context(), media)
	if details == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "details unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"details": details})
}

func (c *CatalogController) Recommendations(ctx *gin.Context) {
	role, err := resolveRole(ctx, ctx.Query("role"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	items, err := c.catalog.Recommendations(ctx.Request.Context(), ctx.Param("roomID"), role)
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": items})
}

func (c *CatalogController) Suggestions(ctx *gin.Context) {
	items, err := c.catalog.Suggestions(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		writeError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": items})
}
