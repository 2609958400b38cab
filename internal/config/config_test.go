package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8080
  max_connections: 5000

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

game:
  room_timeout: 15
  ai_delay_ms: 250
  max_ai_draws: 5
  shutdown_timeout: 60
  shutdown_check_interval: 30

security:
  allowed_origins:
    - "http://localhost:3000"
  rate_limit:
    max_per_second: 20
    max_per_minute: 120
    ban_duration: 120
  message_limit:
    max_per_second: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Server.MaxConnections)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 15*time.Minute, cfg.Game.RoomTimeoutDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.Game.AIDelayDuration())
	assert.Equal(t, 5, cfg.Game.MaxAIDraws)
	assert.Equal(t, time.Minute, cfg.Game.ShutdownTimeoutDuration())
	assert.Equal(t, 30*time.Second, cfg.Game.ShutdownCheckIntervalDuration())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 2*time.Minute, cfg.Security.RateLimit.BanDurationTime())
	assert.Equal(t, 50, cfg.Security.MessageLimit.MaxPerSecond)
}

func TestLoad_PartialConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  port: 9000
game:
  ai_delay_ms: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, def.Server.Host, cfg.Server.Host)
	assert.Equal(t, def.Redis.Addr, cfg.Redis.Addr)
	assert.Equal(t, def.Game.RoomTimeout, cfg.Game.RoomTimeout)
	assert.Equal(t, 15, cfg.Game.MaxAIDraws)
	assert.Zero(t, cfg.Game.AIDelay, "0 disables the AI delay")
	assert.Equal(t, def.Security, cfg.Security)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 1790, cfg.Server.Port)
	assert.Equal(t, 800*time.Millisecond, cfg.Game.AIDelayDuration())
	assert.Equal(t, 10*time.Minute, cfg.Game.RoomTimeoutDuration())
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
}
