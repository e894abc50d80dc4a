package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{
		serverPortEnv, storageDriverEnv, maxReviewersEnv, uniqueReviewersEnv,
		editorSessionTTLEnv, shutdownTimeoutEnv, rosterFixtureEnv,
	} {
		t.Setenv(key, "")
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerPort)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 0, cfg.MaxReviewers)
	assert.False(t, cfg.UniqueReviewers)
	assert.Equal(t, 30*time.Minute, cfg.EditorSessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.RosterFixturePath)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv(serverPortEnv, "9000")
	t.Setenv(storageDriverEnv, StoragePostgres)
	t.Setenv(dbUserEnv, "roster")
	t.Setenv(dbPasswordEnv, "secret")
	t.Setenv(dbHostEnv, "db")
	t.Setenv(dbPortEnv, "5433")
	t.Setenv(dbNameEnv, "roster")
	t.Setenv(dbSSLModeEnv, "require")
	t.Setenv(maxReviewersEnv, "3")
	t.Setenv(uniqueReviewersEnv, "true")
	t.Setenv(editorSessionTTLEnv, "5m")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerPort)
	assert.Equal(t, "postgres://roster:secret@db:5433/roster?sslmode=require", cfg.DBConnectionString)
	assert.Equal(t, 3, cfg.MaxReviewers)
	assert.True(t, cfg.UniqueReviewers)
	assert.Equal(t, 5*time.Minute, cfg.EditorSessionTTL)
}

func TestNewConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		maxReviewersEnv:     "three",
		uniqueReviewersEnv:  "maybe",
		editorSessionTTLEnv: "soon",
		storageDriverEnv:    "redis",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}

	t.Run("negative cap", func(t *testing.T) {
		t.Setenv(maxReviewersEnv, "-1")

		_, err := NewConfig()
		assert.Error(t, err)
	})
}
