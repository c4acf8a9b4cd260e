package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogSphere.com/cmd/admin/dal/db"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/database/dbtest"
	"BlogSphere.com/pkg/errno"
)

func TestKindsFor(t *testing.T) {
	kinds, ok := KindsFor(PageDashboard)
	require.True(t, ok)
	assert.Equal(t, []db.SearchKind{db.KindPost, db.KindComment, db.KindUser}, kinds)

	kinds, ok = KindsFor(PageSupport)
	require.True(t, ok)
	assert.Equal(t, []db.SearchKind{db.KindSupport}, kinds)

	_, ok = KindsFor("settings.php")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	require.NoError(t, gdb.Create(&model.User{UserName: "golang_fan", Email: "fan@example.com", Password: "x"}).Error)
	require.NoError(t, gdb.Create(&model.User{UserName: "golangXfan", Email: "other@example.com", Password: "x"}).Error)
	require.NoError(t, gdb.Create(&model.Post{UserId: 1, Title: "Learning Golang", Content: "generics", Status: model.PostPublished}).Error)
	require.NoError(t, gdb.Create(&model.Comment{PostId: 1, AuthorName: "ann", Content: "golang rocks", Status: model.CommentPending}).Error)
	require.NoError(t, gdb.Create(&model.SupportMessage{Name: "bob", Email: "bob@example.com", Message: "golang page is broken"}).Error)
	svc := NewSearchService(db.NewSearchDB(gdb))

	t.Run("dashboard aggregates its kinds", func(t *testing.T) {
		res, err := svc.Search(ctx, PageDashboard, "golang")
		require.NoError(t, err)
		kinds := map[db.SearchKind]int{}
		for _, r := range res.Results {
			kinds[r.Kind]++
		}
		assert.Equal(t, map[db.SearchKind]int{db.KindPost: 1, db.KindComment: 1, db.KindUser: 2}, kinds)
	})

	t.Run("page limits kinds", func(t *testing.T) {
		res, err := svc.Search(ctx, PagePosts, "golang")
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, "Learning Golang", res.Results[0].Title)

		res, err = svc.Search(ctx, PageSupport, "golang")
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, db.KindSupport, res.Results[0].Kind)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		res, err := svc.Search(ctx, PageUsers, "golang_")
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, "golang_fan", res.Results[0].Title)
	})

	t.Run("empty query", func(t *testing.T) {
		res, err := svc.Search(ctx, PageUsers, "  ")
		require.NoError(t, err)
		assert.Empty(t, res.Results)
	})

	t.Run("unknown page", func(t *testing.T) {
		_, err := svc.Search(ctx, "settings", "golang")
		assert.ErrorIs(t, err, errno.ParamErr)
	})
}
