package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/empowrai/empowr-backend/internal/monitoring"
)

// Config holds rate limiter configuration
type Config struct {
	IPLimitPerMin   int // per-IP request limit per minute
	BurstMultiplier int // burst capacity multiplier for the fallback limiter
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		IPLimitPerMin:   60,
		BurstMultiplier: 2,
	}
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter provides distributed rate limiting with Redis and an in-memory
// fallback when Redis is unavailable.
type RateLimiter struct {
	redisLimiter *redis_rate.Limiter
	redisClient  *RedisClient
	config       Config
	metrics      *monitoring.Metrics

	fallbackLimiters map[string]*rate.Limiter
	fallbackMutex    sync.RWMutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redisClient *RedisClient, config Config, metrics *monitoring.Metrics) *RateLimiter {
	rl := &RateLimiter{
		redisClient:      redisClient,
		config:           config,
		metrics:          metrics,
		fallbackLimiters: make(map[string]*rate.Limiter),
	}

	if redisClient.IsEnabled() {
		rl.redisLimiter = redis_rate.NewLimiter(redisClient.GetClient())
		slog.Info("Redis rate limiter initialized")
	} else {
		slog.Warn("Redis unavailable, using in-memory rate limiting only")
	}

	go rl.cleanupFallbackLimiters()

	return rl
}

// AllowIP checks if an IP address is allowed to make a request
func (rl *RateLimiter) AllowIP(ctx context.Context, ip string) (*Result, error) {
	limit := rl.config.IPLimitPerMin

	if rl.redisLimiter != nil {
		key := fmt.Sprintf("ratelimit:ip:%s", ip)
		res, err := rl.redisLimiter.Allow(ctx, key, redis_rate.PerMinute(limit))
		if err != nil {
			rl.metrics.IncrementRateLimitRedisError()
			slog.Warn("Redis rate limit check failed, using fallback", "error", err, "ip", ip)
			return rl.allowFallback(ip, limit), nil
		}

		return &Result{
			Allowed:    res.Allowed > 0,
			Limit:      limit,
			Remaining:  res.Remaining,
			RetryAfter: res.RetryAfter,
		}, nil
	}

	return rl.allowFallback(ip, limit), nil
}

// allowFallback uses a per-IP token bucket when Redis is unavailable
func (rl *RateLimiter) allowFallback(ip string, limit int) *Result {
	rl.metrics.IncrementRateLimitFallback()

	rl.fallbackMutex.Lock()
	limiter, exists := rl.fallbackLimiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(float64(limit)/60), limit*rl.config.BurstMultiplier)
		rl.fallbackLimiters[ip] = limiter
	}
	rl.fallbackMutex.Unlock()

	allowed := limiter.Allow()
	res := &Result{
		Allowed: allowed,
		Limit:   limit,
	}
	if !allowed {
		res.RetryAfter = time.Second
	}
	return res
}

// cleanupFallbackLimiters periodically drops idle fallback limiters to bound
// memory growth.
func (rl *RateLimiter) cleanupFallbackLimiters() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.fallbackMutex.Lock()
		if len(rl.fallbackLimiters) > 10000 {
			rl.fallbackLimiters = make(map[string]*rate.Limiter)
			slog.Info("Cleared in-memory rate limiter table")
		}
		rl.fallbackMutex.Unlock()
	}
}
