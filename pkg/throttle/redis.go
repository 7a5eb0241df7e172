package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// luaFixedWindowCheckAndIncrement atomically counts a submission against
// the current window and reports whether it fits under the limit.
const luaFixedWindowCheckAndIncrement = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
if count > tonumber(ARGV[1]) then
  return 0
end
return 1
`

// RedisConfig holds configuration for the Redis-coordinated limiter.
type RedisConfig struct {
	// Redis is the client used for coordination.
	Redis redis.UniversalClient

	// Key is the Redis key prefix for this limiter.
	Key string

	// Limit is the maximum number of submissions per window, shared
	// across every producer instance using the same key.
	Limit int

	// Window is the fixed window duration. Zero means one second.
	Window time.Duration

	// Timeout bounds each Redis operation. Zero means 500ms.
	Timeout time.Duration

	// Fallback, if set, is consulted when Redis is unavailable instead
	// of failing the submission.
	Fallback Limiter
}

// ConfigError represents a limiter configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "throttle config error: " + e.Message
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}

// redisFixedWindow implements distributed fixed-window submission limiting
// using Redis, so producers across processes share one budget.
type redisFixedWindow struct {
	config RedisConfig
	script *redis.Script
}

// NewRedisFixedWindow creates a Redis-coordinated fixed-window limiter.
func NewRedisFixedWindow(config RedisConfig) (Limiter, error) {
	if config.Redis == nil {
		return nil, &ConfigError{"redis client is required"}
	}
	if config.Key == "" {
		return nil, &ConfigError{"key is required"}
	}
	if config.Limit <= 0 {
		return nil, &ConfigError{"limit must be positive"}
	}

	if config.Window <= 0 {
		config.Window = time.Second
	}
	if config.Timeout <= 0 {
		config.Timeout = 500 * time.Millisecond
	}

	return &redisFixedWindow{
		config: config,
		script: redis.NewScript(luaFixedWindowCheckAndIncrement),
	}, nil
}

func (r *redisFixedWindow) Allow(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	windowKey := r.windowKey(time.Now())

	result, err := r.script.Run(ctx, r.config.Redis, []string{windowKey},
		r.config.Limit,
		r.config.Window.Milliseconds(),
	).Result()

	if err != nil {
		if r.config.Fallback != nil {
			return r.config.Fallback.Allow(ctx)
		}
		return false, &RedisError{"allow", err}
	}

	allowed, ok := result.(int64)
	return ok && allowed == 1, nil
}

func (r *redisFixedWindow) Type() string { return "redis_fixed_window" }

// windowKey returns the Redis key for the window containing t.
func (r *redisFixedWindow) windowKey(t time.Time) string {
	window := t.UnixNano() / int64(r.config.Window)
	return fmt.Sprintf("%s:window:%d", r.config.Key, window)
}
