package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"BlogSphere.com/pkg/constants"
)

// ReactionLocker serializes toggles of the same (post, user) pair across
// API instances.
type ReactionLocker struct {
	rs *redsync.Redsync
}

func NewReactionLocker(client *redis.Client) *ReactionLocker {
	return &ReactionLocker{rs: redsync.New(goredis.NewPool(client))}
}

// Lock blocks until the pair is free or ctx is done. The returned func
// releases the lock and is safe to call once.
func (l *ReactionLocker) Lock(ctx context.Context, postId, userId int64) (func(), error) {
	mutex := l.rs.NewMutex(fmt.Sprintf(constants.ReactionLockKey, postId, userId),
		redsync.WithExpiry(constants.ReactionLockExpiry),
		redsync.WithTries(20),
		redsync.WithRetryDelay(50*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		if ok, err := mutex.UnlockContext(context.Background()); !ok || err != nil {
			hlog.CtxWarnf(ctx, "release %s: ok=%v err=%v", mutex.Name(), ok, err)
		}
	}, nil
}
