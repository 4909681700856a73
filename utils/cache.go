// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"routed/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (in-flight guards, short-lived state).
	CacheClient *redis.Client
	// ItineraryCacheClient holds per-user itinerary context between requests.
	ItineraryCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitItineraryCache initializes the Redis client for itinerary context storage.
func InitItineraryCache() {
	ItineraryCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisItineraryDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ItineraryCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Itinerary Cache): %v", err)
	}
}

// GetItineraryCacheClient returns the Redis client for itinerary context storage.
func GetItineraryCacheClient() *redis.Client {
	if ItineraryCacheClient == nil {
		InitItineraryCache()
	}
	return ItineraryCacheClient
}
