package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_YAML(t *testing.T) {
	reader := strings.NewReader(`
news:
  apiKey: "yaml-key"
  country: "pl"
  pageSize: 10
storage:
  postgresUrl: "postgres://localhost/news"
  redisUrl: "redis://localhost:6379"
locationLog: "/tmp/location.log"
`)

	cfg, err := NewLoader(reader).Load()
	require.NoError(t, err)

	assert.Equal(t, "yaml-key", cfg.News.APIKey)
	assert.Equal(t, "pl", cfg.News.Country)
	assert.Equal(t, 10, cfg.News.PageSize)
	assert.Equal(t, "https://newsapi.org", cfg.News.BaseURL, "defaults survive partial yaml")
	assert.Equal(t, "/tmp/location.log", cfg.LocationLog)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "env-key")
	t.Setenv("NEWS_PAGE_SIZE", "50")
	t.Setenv("POSTGRES_URL", "postgres://env/db")
	t.Setenv("REDIS_URL", "redis://env:6379")

	reader := strings.NewReader(`
news:
  apiKey: "yaml-key"
  pageSize: 10
`)

	cfg, err := NewLoader(reader).Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.News.APIKey)
	assert.Equal(t, 50, cfg.News.PageSize)
	assert.Equal(t, "postgres://env/db", cfg.Storage.PostgresURL)
}

func TestLoader_MissingAPIKeyFails(t *testing.T) {
	reader := strings.NewReader(`
storage:
  postgresUrl: "postgres://localhost/news"
  redisUrl: "redis://localhost:6379"
`)

	_, err := NewLoader(reader).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "news api key")
}

func TestLoader_MissingStorageFails(t *testing.T) {
	reader := strings.NewReader(`
news:
  apiKey: "k"
`)

	_, err := NewLoader(reader).Load()
	require.Error(t, err)
}
