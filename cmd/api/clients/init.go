package clients

import (
	"context"
	"time"

	"gorm.io/gorm"

	interactionsvc "BlogSphere.com/cmd/interaction/service"
	"BlogSphere.com/pkg/mq"
	"BlogSphere.com/pkg/security"
)

// RateLimiter is satisfied by security.SlidingWindowLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*security.RateLimitResult, error)
}

// Deps carries what the in-process services are built from. Everything but
// DB and Tokens may be left nil.
type Deps struct {
	DB           *gorm.DB
	Tokens       *security.JWTManager
	Limiter      RateLimiter
	Locker       interactionsvc.Locker
	Producer     mq.MessageProducer
	Broadcaster  interactionsvc.CommentBroadcaster
	ThreadCache  interactionsvc.ThreadCache
	IsAdminEmail func(email string) bool
}

// Init builds every service client the gateway handlers call.
func Init(d *Deps) {
	InitPost(d)
	InitUser(d)
	InitInteraction(d)
	InitRelation(d)
	InitSupport(d)
	InitNotification(d)
	InitAdmin(d)
}
