package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tablehost/sop-backend/config"
	"github.com/tablehost/sop-backend/pkg/logger"
)

var client *redis.Client

// Init initializes the Redis connection. When Redis is disabled in the
// configuration the client stays nil and every cache call becomes a no-op.
func Init(cfg *config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Info("Redis disabled, translation cache will be bypassed", nil)
		return nil
	}

	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance (nil when disabled)
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// TranslationCacheKey builds the cache key for a translation listing request.
// The key includes every request parameter that changes the response payload.
func TranslationCacheKey(locale, category, keys string) string {
	return fmt.Sprintf("translations:%s:cat=%s:keys=%s", locale, category, keys)
}

// GetCachedTranslations returns the cached payload for the key, along with a
// hit flag. A nil client or a missing key is a miss, not an error.
func GetCachedTranslations(ctx context.Context, key string) (string, bool, error) {
	if client == nil {
		return "", false, nil
	}

	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Failed to read translation cache", err, map[string]interface{}{
			"key": key,
		})
		return "", false, err
	}
	return val, true, nil
}

// SetCachedTranslations stores a serialized translation payload under the key
func SetCachedTranslations(ctx context.Context, key, payload string, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Error("Failed to write translation cache", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	logger.Debug("Translation cache populated", map[string]interface{}{
		"key": key,
		"ttl": ttl.String(),
	})
	return nil
}

// InvalidateLocale drops every cached translation payload for the locale.
// Called after translation imports so tablets pick up new strings.
func InvalidateLocale(ctx context.Context, locale string) error {
	if client == nil {
		return nil
	}

	pattern := fmt.Sprintf("translations:%s:*", locale)
	keys, err := client.Keys(ctx, pattern).Result()
	if err != nil {
		logger.Error("Failed to scan translation cache keys", err, map[string]interface{}{
			"pattern": pattern,
		})
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := client.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Failed to invalidate translation cache", err, map[string]interface{}{
			"locale": locale,
		})
		return err
	}

	logger.Info("Translation cache invalidated", map[string]interface{}{
		"locale": locale,
		"keys":   len(keys),
	})
	return nil
}
