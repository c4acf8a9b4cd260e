package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogSphere.com/cmd/notification/dal/db"
	"BlogSphere.com/pkg/database/dbtest"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/mq"
	"BlogSphere.com/pkg/security"
)

func TestEventHandler(t *testing.T) {
	ctx := context.Background()
	repo := db.NewNotificationDB(dbtest.New(t))
	handler := NewEventHandler(repo)
	svc := NewNotificationService(repo)
	author := &security.Identity{UserID: 7, Username: "author"}
	guestEvent := &mq.CommentEvent{EventID: "c1", Type: mq.CommentCreated, CommentID: 3, PostID: 1, PostAuthorID: 7, AuthorName: "guest", Status: "approved"}

	events := []*mq.ReactionEvent{
		{EventID: "r1", PostID: 1, PostAuthorID: 7, UserID: 8, Username: "fan", Kind: "like", Action: "liked"},
		{EventID: "r1", PostID: 1, PostAuthorID: 7, UserID: 8, Username: "fan", Kind: "like", Action: "liked"},
		{EventID: "r2", PostID: 1, PostAuthorID: 7, UserID: 8, Username: "fan", Kind: "like", Action: "unliked"},
		{EventID: "r3", PostID: 1, PostAuthorID: 7, UserID: 7, Username: "author", Kind: "like", Action: "liked"},
		{EventID: "r4", PostID: 1, PostAuthorID: 7, UserID: 9, Username: "critic", Kind: "dislike", Action: "disliked"},
	}
	for _, e := range events {
		require.NoError(t, handler.HandleReactionEvent(ctx, e))
	}
	require.NoError(t, handler.HandleCommentEvent(ctx, &mq.CommentEvent{EventID: "c0", Type: mq.CommentCreated, PostID: 1, PostAuthorID: 7, Status: "pending"}))
	require.NoError(t, handler.HandleCommentEvent(ctx, guestEvent))

	res, err := svc.List(ctx, author, false, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, int64(3), res.Unread)
	contents := make([]string, 0, len(res.Notifications))
	for _, n := range res.Notifications {
		contents = append(contents, n.Content)
	}
	assert.ElementsMatch(t, []string{"fan liked your post", "critic disliked your post", "guest commented on your post"}, contents)

	n, err := svc.MarkRead(ctx, author, []int64{res.Notifications[0].NotificationId})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	res, err = svc.List(ctx, author, true, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	n, err = svc.MarkRead(ctx, author, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.List(ctx, nil, false, 1, 10)
	assert.ErrorIs(t, err, errno.AuthenticationRequired)
}
