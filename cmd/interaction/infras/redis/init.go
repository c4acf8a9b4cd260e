package redis

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"

	"BlogSphere.com/config"
)

// Load connects to the Redis instance used for rate limiting and locks.
// A failed ping is logged only; callers fail open while Redis is away.
func Load() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.ConfigInfo.Redis.Addr,
		Password: config.ConfigInfo.Redis.Password,
		DB:       config.ConfigInfo.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		hlog.Warnf("redis %s unreachable: %v", config.ConfigInfo.Redis.Addr, err)
	}
	return client
}
