package security

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript drops entries older than the window, then records the
// current attempt only if the window still has room. Rejected attempts are
// not recorded.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
	local count = redis.call('ZCARD', key)
	if count >= limit then
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
		return {0, count, tonumber(oldest[2])}
	end
	redis.call('ZADD', key, now, ARGV[4])
	redis.call('PEXPIRE', key, window)
	return {1, count + 1, now}
`)

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool
	Count      int64
	RetryAfter time.Duration
}

// SlidingWindowLimiter counts events per key over a rolling window.
type SlidingWindowLimiter struct {
	client redis.Scripter
	now    func() time.Time
}

func NewSlidingWindowLimiter(client redis.Scripter) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{client: client, now: time.Now}
}

// Allow records an event for key if fewer than limit events happened within
// the last window.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	now := l.now().UnixMilli()
	res, err := slidingWindowScript.Run(ctx, l.client, []string{key},
		now, window.Milliseconds(), limit, uuid.New().String()).Result()
	if err != nil {
		return nil, fmt.Errorf("sliding window %s: %w", key, err)
	}
	values, ok := res.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("sliding window %s: unexpected reply %v", key, res)
	}
	allowed, _ := values[0].(int64)
	count, _ := values[1].(int64)
	oldest, _ := values[2].(int64)

	result := &RateLimitResult{Allowed: allowed == 1, Count: count}
	if !result.Allowed {
		result.RetryAfter = time.Duration(oldest+window.Milliseconds()-now) * time.Millisecond
	}
	return result, nil
}
