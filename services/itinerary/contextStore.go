package itinerary

import (
	"context"
	"encoding/json"
	"time"

	"routed/models"

	"github.com/go-redis/redis/v8"
)

const itineraryContextPrefix = "itinerary:ctx:"

// RedisContextStore keeps the latest itinerary per user so stops can be
// edited without regenerating the whole plan.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

// Get returns nil without error when no context is stored.
func (s *RedisContextStore) Get(ctx context.Context, userID string) (*models.ItineraryContext, error) {
	key := itineraryContextPrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var itCtx models.ItineraryContext
	if err := json.Unmarshal([]byte(data), &itCtx); err != nil {
		return nil, err
	}
	return &itCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, userID string, itCtx *models.ItineraryContext) error {
	key := itineraryContextPrefix + userID
	b, err := json.Marshal(itCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, userID string) error {
	key := itineraryContextPrefix + userID
	return s.client.Del(ctx, key).Err()
}
