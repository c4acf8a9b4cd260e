package service

import (
	"context"
	"time"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/security"
)

// PostGetter loads a post, returning nil when it does not exist.
type PostGetter interface {
	GetPost(ctx context.Context, postId int64) (*model.Post, error)
}

// Locker serializes work on a (post, user) pair.
type Locker interface {
	Lock(ctx context.Context, postId, userId int64) (func(), error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*security.RateLimitResult, error)
}

// CommentBroadcaster pushes newly visible comments to live readers.
type CommentBroadcaster interface {
	BroadcastComment(postId int64, comment *model.Comment, html string)
}

// ThreadCache holds the approved comment thread of a post. GetThreads
// returns nil on a miss.
type ThreadCache interface {
	GetThreads(ctx context.Context, postId int64) ([]*model.CommentThread, error)
	SetThreads(ctx context.Context, postId int64, threads []*model.CommentThread) error
	Invalidate(ctx context.Context, postId int64) error
}

func publishedPost(ctx context.Context, posts PostGetter, postId int64) (*model.Post, error) {
	post, err := posts.GetPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != model.PostPublished {
		return nil, nil
	}
	return post, nil
}
