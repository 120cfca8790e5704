package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsDir_MatchesAdapterDialect(t *testing.T) {
	sqlite := &Config{DatabaseAdapter: "sqlite"}
	assert.Equal(t, "db/migrations", sqlite.MigrationsDir())

	postgres := &Config{DatabaseAdapter: "postgres"}
	assert.Equal(t, "infra/migrations", postgres.MigrationsDir())
}

func TestMigrationsDir_ExplicitPathWins(t *testing.T) {
	cfg := &Config{DatabaseAdapter: "postgres", MigrationsPath: "custom/migrations"}

	assert.Equal(t, "custom/migrations", cfg.MigrationsDir())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Environment: "production"}).IsProduction())
	assert.False(t, (&Config{Environment: "development"}).IsProduction())
}

func TestGoogleOAuthConfigured(t *testing.T) {
	assert.False(t, (&Config{GoogleClientID: "id"}).GoogleOAuthConfigured())
	assert.True(t, (&Config{GoogleClientID: "id", GoogleClientSecret: "secret"}).GoogleOAuthConfigured())
}
