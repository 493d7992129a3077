package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: dev\n"))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "movienight.db", cfg.Database.DSN)
	assert.Equal(t, 2, cfg.Voting.MinVotes)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)

	window, err := cfg.Voting.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, window.Weekday)
	assert.Equal(t, 0, window.Hour)
}

func TestLoadReadsVotingSection(t *testing.T) {
	cfg, err := Load(writeConfig(t, "voting:\n  anchor_weekday: Fri\n  anchor_hour: 18\n  min_votes: 3\n"))
	require.NoError(t, err)

	window, err := cfg.Voting.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Friday, window.Weekday)
	assert.Equal(t, 18, window.Hour)
	assert.Equal(t, 3, cfg.Voting.MinVotes)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "voting:\n  anchor_weekday: someday\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "voting:\n  anchor_hour: 25\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "database:\n  driver: mysql\n"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMustLoadPathPanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
