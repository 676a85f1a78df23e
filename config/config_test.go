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

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":9090"
  allowed_origins: ["https://lanes.example.com"]
  rate_limit: 5
  rate_burst: 10
nats:
  url: nats://localhost:4222
  queue_group: lanes
jwt:
  secret: s3cret
  default_ttl: 2h
games:
  idle_ttl: 30m
observability:
  log_level: debug
  log_format: text
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://lanes.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 5.0, cfg.HTTP.RateLimit)
	assert.Equal(t, 10, cfg.HTTP.RateBurst)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "lanes", cfg.NATS.QueueGroup)
	assert.Equal(t, DefaultRequestSubject, cfg.NATS.RequestSubject)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.DefaultTTL)
	assert.Equal(t, DefaultJWTIssuer, cfg.JWT.Issuer)
	assert.Equal(t, 30*time.Minute, cfg.Games.IdleTTL)
	assert.Equal(t, 5*time.Minute, cfg.Games.SweepInterval)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, "text", cfg.Observability.LogFormat)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	assert.Empty(t, cfg.NATS.URL)
	assert.Empty(t, cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.DefaultTTL)
	assert.Equal(t, "bowl-bot", cfg.Observability.ServiceName)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "nats:\n  url: nats://file:4222\n")
	t.Setenv("NATS_URL", "nats://env:4222")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("GAME_IDLE_TTL", "1h")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Games.IdleTTL)
	assert.Equal(t, "warn", ToObsConfig(cfg).LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "http: [unclosed"))
	assert.Error(t, err)

	t.Setenv("JWT_DEFAULT_TTL", "forever")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "JWT_DEFAULT_TTL")
}
