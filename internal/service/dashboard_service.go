package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// StatsInvalidator drops cached dashboard counters after a write.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

func invalidateStats(ctx context.Context, inv StatsInvalidator) {
	if inv != nil {
		inv.Invalidate(ctx)
	}
}

// DashboardService serves dashboard counters through a Redis cache-aside layer.
type DashboardService struct {
	repo repository.DashboardRepository
	rdb  redis.UniversalClient
	ttl  time.Duration
	log  zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo repository.DashboardRepository, rdb redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		repo: repo,
		rdb:  rdb,
		ttl:  ttl,
		log:  log.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetStats returns the counters for one school, or for every school when
// schoolID is 0. A cache failure falls through to the database.
func (s *DashboardService) GetStats(ctx context.Context, schoolID int) (*model.DashboardStats, error) {
	key := config.CacheKey.DashboardStatsKey(schoolID)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var stats model.DashboardStats
		if err := json.Unmarshal(raw, &stats); err == nil {
			return &stats, nil
		}
		s.log.Warn().Str("key", key).Msg("discarding undecodable dashboard cache entry")
	case !errors.Is(err, redis.Nil):
		s.log.Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
	}

	stats, err := s.repo.GetStats(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
		}
	}
	return stats, nil
}

// Invalidate removes every cached dashboard entry.
func (s *DashboardService) Invalidate(ctx context.Context) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, config.CacheKey.DashboardPattern(), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Int("keys", len(keys)).Msg("dashboard cache invalidation failed")
	}
}
