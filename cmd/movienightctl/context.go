package main

import (
	"os"
	"strings"
	"sync"

	"github.com/immxrtalbeast/movienight/internal/config"
	"github.com/immxrtalbeast/movienight/internal/repository"
	"github.com/immxrtalbeast/movienight/internal/service"
	"github.com/immxrtalbeast/movienight/lib/logger/handlers/slogdiscard"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const defaultConfigPath = "config/local.yaml"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		_ = godotenv.Load(".env")

		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}
		if path == "" {
			path = defaultConfigPath
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) database() (*gorm.DB, error) {
	c.dbOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.dbErr = err
			return
		}
		c.db, c.dbErr = repository.OpenDatabase(cfg.Database.Driver, cfg.Database.DSN)
	})
	return c.db, c.dbErr
}

func (c *commandContext) voteService() (*service.VoteService, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	window, err := cfg.Voting.Window()
	if err != nil {
		return nil, err
	}
	db, err := c.database()
	if err != nil {
		return nil, err
	}
	return service.NewVoteService(
		repository.NewGormRoomRepository(db),
		repository.NewGormFavoriteRepository(db),
		repository.NewGormVoteRepository(db),
		repository.NewGormTimelineRepository(db),
		nil,
		slogdiscard.NewDiscardLogger(),
		service.WithVotingWindow(window),
		service.WithMinVotes(cfg.Voting.MinVotes),
	), nil
}

func (c *commandContext) favoriteService() (*service.FavoriteService, error) {
	db, err := c.database()
	if err != nil {
		return nil, err
	}
	return service.NewFavoriteService(
		repository.NewGormRoomRepository(db),
		repository.NewGormFavoriteRepository(db),
		repository.NewGormTimelineRepository(db),
		nil,
		slogdiscard.NewDiscardLogger(),
	), nil
}

func (c *commandContext) close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
