package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")
	t.Setenv("LOGIN_RATE_PER_SEC", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 0.2, cfg.LoginRatePerSec)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MAX_DB_CONNS", "4")
	t.Setenv("LOGIN_BURST", "not-a-number")
	t.Setenv("LOGIN_RATE_PER_SEC", "-1")
	t.Setenv("DASHBOARD_CACHE_TTL_SECONDS", "5")
	t.Setenv("ALLOWED_ORIGINS", " https://a.sch.id, ,https://b.sch.id ")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, int32(4), cfg.MaxDBConns)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Equal(t, 0.2, cfg.LoginRatePerSec)
	assert.Equal(t, 5*time.Second, cfg.DashboardCacheTTL)
	assert.Equal(t, []string{"https://a.sch.id", "https://b.sch.id"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "session:abc", CacheKey.SessionKey("abc"))
	assert.Equal(t, "user:7:sessions", CacheKey.UserSessionsKey(7))
	assert.Equal(t, "ratelimit:login:10.0.0.1", CacheKey.LoginRateLimitKey("10.0.0.1"))
	assert.Equal(t, "dashboard:0:stats", CacheKey.DashboardStatsKey(0))
}
