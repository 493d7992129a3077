package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	httpapi "github.com/immxrtalbeast/movienight/internal/api/http"
	"github.com/immxrtalbeast/movienight/internal/cache"
	"github.com/immxrtalbeast/movienight/internal/catalog"
	"github.com/immxrtalbeast/movienight/internal/config"
	"github.com/immxrtalbeast/movienight/internal/realtime"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/internal/service"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
	"github.com/immxrtalbeast/movienight/lib/logger/slogpretty"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	db, err := repository.OpenDatabase(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Error("failed to connect database", sl.Err(err))
		os.Exit(1)
	}

	window, err := cfg.Voting.Window()
	if err != nil {
		log.Error("invalid voting window", sl.Err(err))
		os.Exit(1)
	}

	roomRepo := repository.NewGormRoomRepository(db)
	favoriteRepo := repository.NewGormFavoriteRepository(db)
	voteRepo := repository.NewGormVoteRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	noteRepo := repository.NewGormNoteRepository(db)
	timelineRepo := repository.NewGormTimelineRepository(db)

	hub := realtime.NewHub(log)

	var catalogClient service.CatalogClient
	if cfg.Catalog.APIKey != "" {
		client, err := catalog.New(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, cfg.Catalog.Language,
			catalog.WithImageBaseURL(cfg.Catalog.ImageBaseURL),
			catalog.WithTimeout(cfg.Catalog.Timeout),
		)
		if err != nil {
			log.Error("failed to create catalog client", sl.Err(err))
			os.Exit(1)
		}
		catalogClient = client
	} else {
		log.Warn("catalog api key is empty, catalog lookups will return no results")
	}

	var catalogCache service.CatalogCache
	var cacheStatus httpapi.CacheStatus
	var redisCache *cache.Cache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err = cache.Connect(context.Background(), cache.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Warn("redis unavailable, catalog cache disabled", sl.Err(err))
		} else {
			catalogCache = redisCache
			cacheStatus = redisCache
		}
	}

	roomService := service.NewRoomService(roomRepo, log)
	favoriteService := service.NewFavoriteService(roomRepo, favoriteRepo, timelineRepo, hub, log)
	voteService := service.NewVoteService(roomRepo, favoriteRepo, voteRepo, timelineRepo, hub, log,
		service.WithVotingWindow(window),
		service.WithMinVotes(cfg.Voting.MinVotes),
	)
	messageService := service.NewMessageService(roomRepo, messageRepo, noteRepo, hub, log)
	timelineService := service.NewTimelineService(roomRepo, timelineRepo, hub, log)
	catalogService := service.NewCatalogService(roomRepo, favoriteRepo, catalogClient, catalogCache, log)

	router := httpapi.SetupRouter(cfg.HTTP.AllowOrigins, httpapi.Controllers{
		Rooms:     httpapi.NewRoomController(roomService, log),
		Favorites: httpapi.NewFavoriteController(favoriteService, log),
		Votes:     httpapi.NewVoteController(voteService, log),
		Messages:  httpapi.NewMessageController(messageService, log),
		Timeline:  httpapi.NewTimelineController(timelineService, log),
		Catalog:   httpapi.NewCatalogController(catalogService, log),
		Stream:    httpapi.NewStreamController(roomService, hub, cfg.HTTP.AllowOrigins, log),
		Health:    httpapi.NewHealthController(cacheStatus, log),
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	go func() {
		log.Info("starting application", slog.String("addr", cfg.HTTP.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", sl.Err(err))
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.HTTP.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				log.Info("shutting down http server")
				return srv.Shutdown(ctx)
			},
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
			"cache": func(ctx context.Context) error {
				if redisCache == nil {
					return nil
				}
				return redisCache.Close()
			},
		},
	)

	exitCode := <-wait
	log.Info("application stopped", slog.Int("exit_code", exitCode))
	os.Exit(exitCode)
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
