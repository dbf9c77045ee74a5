package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys. Every citizen client polls the full notification list for its
// badge counter, so that read is the hottest in the system.
const (
	NotificationsKey    = "notifications:all"
	AdminStatsKey       = "admin:stats"
	NotificationsTTL    = 2 * time.Minute
	AdminStatsTTL       = time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache degrades gracefully: if
// Redis is unreachable every Get misses and every Set is a no-op.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCached returns cached data for a key.
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL.
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys.
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateNotifications clears the notification list cache.
// Called when: create, edit or delete of a notification, and when a status
// update or bill release fans out a direct notification.
func InvalidateNotifications(ctx context.Context) {
	InvalidateKeys(ctx, NotificationsKey)
}

// InvalidateStats clears the admin dashboard counters.
// Called when: a complaint or service request is created or changes status,
// or a citizen registers.
func InvalidateStats(ctx context.Context) {
	InvalidateKeys(ctx, AdminStatsKey)
}

// IsHealthy returns true if the Redis connection is working.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
