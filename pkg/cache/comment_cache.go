package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"BlogSphere.com/cmd/model"
)

// 评论区缓存键
const PostThreadsKey = "post:comments:%d"

// CommentCacheManager 评论缓存管理器
type CommentCacheManager struct {
	client       redis.Cmdable
	threadExpire time.Duration
}

// NewCommentCacheManager 创建评论缓存管理器
func NewCommentCacheManager(client redis.Cmdable) *CommentCacheManager {
	return &CommentCacheManager{
		client:       client,
		threadExpire: 10 * time.Minute, // 评论区缓存10分钟
	}
}

// GetThreads 获取缓存的评论区, 未命中返回 nil
func (ccm *CommentCacheManager) GetThreads(ctx context.Context, postId int64) ([]*model.CommentThread, error) {
	data, err := ccm.client.Get(ctx, fmt.Sprintf(PostThreadsKey, postId)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 缓存未命中
		}
		return nil, fmt.Errorf("failed to get cached comment thread: %w", err)
	}

	threads := make([]*model.CommentThread, 0)
	if err := json.Unmarshal(data, &threads); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comment thread: %w", err)
	}
	return threads, nil
}

// SetThreads 缓存评论区
func (ccm *CommentCacheManager) SetThreads(ctx context.Context, postId int64, threads []*model.CommentThread) error {
	data, err := json.Marshal(threads)
	if err != nil {
		return fmt.Errorf("failed to marshal comment thread: %w", err)
	}
	return ccm.client.Set(ctx, fmt.Sprintf(PostThreadsKey, postId), data, ccm.threadExpire).Err()
}

// Invalidate 删除评论区缓存
func (ccm *CommentCacheManager) Invalidate(ctx context.Context, postId int64) error {
	return ccm.client.Del(ctx, fmt.Sprintf(PostThreadsKey, postId)).Err()
}
