package services

import (
	"context"
	"fmt"
	"time"
	"token-sale-api/internal/config"
	"token-sale-api/internal/database"

	"github.com/redis/go-redis/v9"
)

// RedisService provides Redis-backed rate limiting for purchase creation
type RedisService struct {
	client *redis.Client
}

// NewRedisService creates a new Redis service instance. Returns nil when
// Redis is not configured; callers must treat a nil service as "rate
// limiting disabled".
func NewRedisService() *RedisService {
	client := database.GetRedis()
	if client == nil {
		return nil
	}
	return &RedisService{client: client}
}

// CheckRateLimit reports whether a purchase for the wallet arrived within
// the current rate limit window
func (r *RedisService) CheckRateLimit(walletAddress string) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("purchase_rate_limit:%s", walletAddress)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

// SetRateLimit opens a rate limit window for the wallet
func (r *RedisService) SetRateLimit(walletAddress string) error {
	ctx := context.Background()
	key := fmt.Sprintf("purchase_rate_limit:%s", walletAddress)
	expire := time.Duration(config.AppConfig.RateLimitMinutes) * time.Minute
	return r.client.Set(ctx, key, "1", expire).Err()
}
