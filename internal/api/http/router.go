package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Rooms     *RoomController
	Favorites *FavoriteController
	Votes     *VoteController
	Messages  *MessageController
	Timeline  *TimelineController
	Catalog   *CatalogController
	Stream    *StreamController
	Health    *HealthController
}

func SetupRouter(allowOrigins []string, c Controllers) *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Content-Type",
		"Origin",
		"Accept",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	config.ExposeHeaders = []string{"Set-Cookie"}
	router.Use(cors.New(config))
	if c.Health != nil {
		router.GET("/healthz", c.Health.Health)
	} else {
		router.GET("/healthz", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{"status": "ok"})
		})
	}

	api := router.Group("/api")
	rooms := api.Group("/rooms")

	if c.Rooms != nil {
		api.PUT("/session", c.Rooms.PutSession)
		api.GET("/session", c.Rooms.GetSession)
		rooms.POST("", c.Rooms.CreateRoom)
		rooms.PUT("/:roomID", c.Rooms.EnsureRoom)
		rooms.GET("/:roomID", c.Rooms.GetRoom)
	}

	if c.Favorites != nil {
		rooms.GET("/:roomID/favorites", c.Favorites.ListFavorites)
		rooms.POST("/:roomID/favorites", c.Favorites.AddFavorite)
		rooms.DELETE("/:roomID/favorites/:mediaType/:mediaID", c.Favorites.RemoveFavorite)
	}

	if c.Votes != nil {
		api.GET("/period", c.Votes.CurrentPeriod)
		rooms.POST("/:roomID/votes", c.Votes.CastVote)
		rooms.GET("/:roomID/votes", c.Votes.ListVotes)
		rooms.GET("/:roomID/votes/status", c.Votes.VoteStatus)
		rooms.GET("/:roomID/tally", c.Votes.Tally)
		rooms.GET("/:roomID/winner", c.Votes.Winner)
	}

	if c.Messages != nil {
		rooms.GET("/:roomID/messages", c.Messages.ListMessages)
		rooms.POST("/:roomID/messages", c.Messages.SendMessage)
		rooms.GET("/:roomID/notes", c.Messages.ListNotes)
		rooms.POST("/:roomID/notes", c.Messages.SendNote)
		rooms.POST("/:roomID/notes/:noteID/reveal", c.Messages.RevealNote)
	}

	if c.Timeline != nil {
		rooms.GET("/:roomID/timeline", c.Timeline.Timeline)
		rooms.POST("/:roomID/timeline", c.Timeline.SaveMemory)
	}

	if c.Catalog != nil {
		api.GET("/catalog/search", c.Catalog.Search)
		api.GET("/catalog/:mediaType/:mediaID", c.Catalog.Details)
		rooms.GET("/:roomID/recommendations", c.Catalog.Recommendations)
		rooms.GET("/:roomID/suggestions", c.Catalog.Suggestions)
	}

	if c.Stream != nil {
		rooms.GET("/:roomID/ws", c.Stream.Stream)
	}

	return router
}
