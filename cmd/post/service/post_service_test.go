package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/post/dal/db"
	"BlogSphere.com/pkg/database/dbtest"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

var (
	author   = &security.Identity{UserID: 5, Username: "author", Role: model.RoleUser}
	stranger = &security.Identity{UserID: 6, Username: "stranger", Role: model.RoleUser}
	admin    = &security.Identity{UserID: 1, Username: "admin", Role: model.RoleAdmin}
)

func newService(t *testing.T) *PostService {
	return NewPostService(db.NewPostDB(dbtest.New(t)))
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreatePost(ctx, nil, &PostRequest{Title: "t"})
	assert.ErrorIs(t, err, errno.AuthenticationRequired)

	_, err = svc.CreatePost(ctx, author, &PostRequest{Title: "   "})
	assert.ErrorIs(t, err, errno.ParamErr)
	_, err = svc.CreatePost(ctx, author, &PostRequest{Title: strings.Repeat("t", 201)})
	assert.ErrorIs(t, err, errno.ParamErr)
	_, err = svc.CreatePost(ctx, author, &PostRequest{Title: "t", Status: "live"})
	assert.ErrorIs(t, err, errno.InvalidStatus)
	_, err = svc.CreatePost(ctx, author, &PostRequest{Title: "t", CategoryId: func() *int64 { v := int64(42); return &v }()})
	assert.ErrorIs(t, err, errno.CategoryNotFound)

	post, err := svc.CreatePost(ctx, author, &PostRequest{Title: " Hello ", Content: "body", Tags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, model.PostDraft, post.Status)
	assert.Equal(t, model.DislikeEnabled, post.DislikePolicy)
	assert.Equal(t, author.UserID, post.UserId)
}

func TestPostVisibilityAndOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	post, err := svc.CreatePost(ctx, author, &PostRequest{Title: "draft", Tags: []string{"go", "db"}})
	require.NoError(t, err)

	t.Run("drafts are private", func(t *testing.T) {
		_, err := svc.GetPost(ctx, nil, post.PostId)
		assert.ErrorIs(t, err, errno.PostNotFound)
		_, err = svc.GetPost(ctx, stranger, post.PostId)
		assert.ErrorIs(t, err, errno.PostNotFound)

		info, err := svc.GetPost(ctx, author, post.PostId)
		require.NoError(t, err)
		assert.Equal(t, []string{"db", "go"}, info.Tags)
		_, err = svc.GetPost(ctx, admin, post.PostId)
		assert.NoError(t, err)
	})

	t.Run("only author or admin manage", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, stranger, post.PostId, &PostRequest{Title: "x"})
		assert.ErrorIs(t, err, errno.Forbidden)
		_, err = svc.SetPostStatus(ctx, stranger, post.PostId, model.PostPublished)
		assert.ErrorIs(t, err, errno.Forbidden)
		assert.ErrorIs(t, svc.DeletePost(ctx, stranger, post.PostId), errno.Forbidden)

		updated, err := svc.UpdatePost(ctx, admin, post.PostId, &PostRequest{Title: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Title)
		assert.Equal(t, model.PostDraft, updated.Status)
	})

	t.Run("publish", func(t *testing.T) {
		_, err := svc.SetPostStatus(ctx, author, post.PostId, "gone")
		assert.ErrorIs(t, err, errno.InvalidStatus)
		_, err = svc.SetPostStatus(ctx, author, post.PostId, model.PostPublished)
		require.NoError(t, err)

		info, err := svc.GetPost(ctx, nil, post.PostId)
		require.NoError(t, err)
		assert.Equal(t, "edited", info.Title)
		assert.Equal(t, []string{"db", "go"}, info.Tags)
	})

	t.Run("dislike policy is admin only", func(t *testing.T) {
		_, err := svc.SetDislikePolicy(ctx, author, post.PostId, model.DislikeDisabled)
		assert.ErrorIs(t, err, errno.Forbidden)
		_, err = svc.SetDislikePolicy(ctx, admin, post.PostId, "maybe")
		assert.ErrorIs(t, err, errno.InvalidStatus)
		got, err := svc.SetDislikePolicy(ctx, admin, post.PostId, model.DislikePending)
		require.NoError(t, err)
		assert.Equal(t, model.DislikePending, got.DislikePolicy)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeletePost(ctx, author, post.PostId))
		_, err := svc.GetPost(ctx, admin, post.PostId)
		assert.ErrorIs(t, err, errno.PostNotFound)
		assert.ErrorIs(t, svc.DeletePost(ctx, author, post.PostId), errno.PostNotFound)
	})
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for i, status := range []model.PostStatus{model.PostPublished, model.PostPublished, model.PostDraft} {
		_, err := svc.CreatePost(ctx, author, &PostRequest{Title: "p" + string(rune('a'+i)), Status: status})
		require.NoError(t, err)
	}

	list, total, err := svc.ListPosts(ctx, &ListPostsRequest{PageNum: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].Tags)
	assert.Zero(t, list[0].LikeCount)
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreateCategory(ctx, author, "news", "")
	assert.ErrorIs(t, err, errno.Forbidden)
	_, err = svc.CreateCategory(ctx, admin, " ", "")
	assert.ErrorIs(t, err, errno.ParamErr)

	cat, err := svc.CreateCategory(ctx, admin, "news", "daily")
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, author, &PostRequest{Title: "t", CategoryId: &cat.CategoryId, Status: model.PostPublished})
	require.NoError(t, err)

	list, total, err := svc.ListPosts(ctx, &ListPostsRequest{CategoryId: cat.CategoryId})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, post.PostId, list[0].PostId)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, author, cat.CategoryId), errno.Forbidden)
	require.NoError(t, svc.DeleteCategory(ctx, admin, cat.CategoryId))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, admin, cat.CategoryId), errno.CategoryNotFound)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}
