package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key holding a single login session, keyed by JWT ID.
func (r *CacheKeyStruct) SessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

// UserSessionsKey returns the cache key of the set of session IDs a user holds.
func (r *CacheKeyStruct) UserSessionsKey(userID int) string {
	return fmt.Sprintf("user:%d:sessions", userID)
}

// LoginRateLimitKey returns the token bucket key for login attempts from one client.
func (r *CacheKeyStruct) LoginRateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:login:%s", clientIP)
}

// DashboardStatsKey returns the cache key for a school's dashboard counters.
// schoolID 0 means all schools.
func (r *CacheKeyStruct) DashboardStatsKey(schoolID int) string {
	return fmt.Sprintf("dashboard:%d:stats", schoolID)
}

// DashboardPattern matches every cached dashboard entry.
func (r *CacheKeyStruct) DashboardPattern() string {
	return "dashboard:*"
}

var CacheKey = NewCacheKeyStruct()
