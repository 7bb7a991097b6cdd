package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"bookit/models"
	"bookit/monitoring"

	"github.com/redis/go-redis/v9"
)

const (
	experienceListCacheKey  = "experiences:all"
	experienceCacheKeyScope = "experience:"
)

// ExperienceService serves the read-only catalog with a redis read-through
// cache. Redis failures degrade to direct reads; they are never surfaced to
// the caller.
type ExperienceService struct {
	store Store
	redis *redis.Client
	ttl   time.Duration
}

func NewExperienceService(store Store, redisClient *redis.Client, cacheTTL time.Duration) *ExperienceService {
	return &ExperienceService{
		store: store,
		redis: redisClient,
		ttl:   cacheTTL,
	}
}

func (s *ExperienceService) List(ctx context.Context) ([]models.Experience, error) {
	var cached []models.Experience
	if s.cacheGet(ctx, experienceListCacheKey, &cached) {
		return cached, nil
	}

	experiences, err := s.store.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, experienceListCacheKey, experiences)
	return experiences, nil
}

// Get returns one experience with its slots. Slot capacity counters come
// straight from storage, so cached entries are invalidated whenever a booking
// changes them.
func (s *ExperienceService) Get(ctx context.Context, id string) (*models.Experience, error) {
	key := experienceCacheKeyScope + id

	var cached models.Experience
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	experience, err := s.store.ExperienceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := s.store.SlotsByExperience(ctx, id)
	if err != nil {
		return nil, err
	}
	experience.Slots = slots

	s.cacheSet(ctx, key, experience)
	return experience, nil
}

// Invalidate drops the cached entries touched by a capacity change.
func (s *ExperienceService) Invalidate(ctx context.Context, id string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, experienceCacheKeyScope+id, experienceListCacheKey).Err(); err != nil {
		slog.Warn("experience cache invalidation failed", "experience_id", id, "error", err)
	}
}

func (s *ExperienceService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.redis == nil {
		return false
	}

	payload, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		monitoring.TrackCacheRequest("miss")
		return false
	}
	if err != nil {
		monitoring.TrackCacheRequest("error")
		slog.Warn("experience cache read failed", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		monitoring.TrackCacheRequest("error")
		slog.Warn("experience cache entry corrupted", "key", key, "error", err)
		return false
	}

	monitoring.TrackCacheRequest("hit")
	return true
}

func (s *ExperienceService) cacheSet(ctx context.Context, key string, value any) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		slog.Warn("experience cache marshal failed", "key", key, "error", err)
		return
	}

	if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		slog.Warn("experience cache write failed", "key", key, "error", err)
	}
}
