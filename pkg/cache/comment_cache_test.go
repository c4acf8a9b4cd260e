package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogSphere.com/cmd/model"
)

func TestCommentCacheManager(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	ccm := NewCommentCacheManager(client)
	ctx := context.Background()

	got, err := ccm.GetThreads(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	threads := []*model.CommentThread{{
		Comment: model.Comment{CommentId: 1, PostId: 1, AuthorName: "ann", Content: "hi", Status: model.CommentApproved},
		Replies: []*model.Comment{{CommentId: 2, PostId: 1, Content: "re"}},
	}}
	require.NoError(t, ccm.SetThreads(ctx, 1, threads))

	got, err = ccm.GetThreads(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Content)
	require.Len(t, got[0].Replies, 1)
	assert.Equal(t, int64(2), got[0].Replies[0].CommentId)

	t.Run("empty thread is a hit", func(t *testing.T) {
		require.NoError(t, ccm.SetThreads(ctx, 2, []*model.CommentThread{}))
		got, err := ccm.GetThreads(ctx, 2)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("expires", func(t *testing.T) {
		mr.FastForward(11 * time.Minute)
		got, err := ccm.GetThreads(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate", func(t *testing.T) {
		require.NoError(t, ccm.SetThreads(ctx, 3, threads))
		require.NoError(t, ccm.Invalidate(ctx, 3))
		assert.False(t, mr.Exists("post:comments:3"))
	})
}
