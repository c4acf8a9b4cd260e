package service

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/notification/dal/db"
	"BlogSphere.com/pkg/mq"
)

// EventHandler turns reaction and comment events into notifications for
// the post author.
type EventHandler struct {
	notifications db.NotificationRepo
}

var (
	_ mq.ReactionEventHandler = (*EventHandler)(nil)
	_ mq.CommentEventHandler  = (*EventHandler)(nil)
)

func NewEventHandler(notifications db.NotificationRepo) *EventHandler {
	return &EventHandler{notifications: notifications}
}

// HandleReactionEvent records new likes and dislikes. Removals and
// reactions to one's own post are ignored.
func (h *EventHandler) HandleReactionEvent(ctx context.Context, event *mq.ReactionEvent) error {
	kind := model.ReactionKind(event.Kind)
	if !kind.Valid() || event.Action != kind.Added() {
		return nil
	}
	if event.UserID == event.PostAuthorID {
		return nil
	}
	sender := event.UserID
	n := &model.Notification{
		ReceiverId: event.PostAuthorID,
		SenderId:   &sender,
		Type:       event.Kind,
		PostId:     event.PostID,
		EventId:    event.EventID,
		Content:    fmt.Sprintf("%s %s your post", event.Username, event.Action),
	}
	if err := h.notifications.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("store reaction notification: %w", err)
	}
	hlog.CtxDebugf(ctx, "notified user %d of %s on post %d", n.ReceiverId, event.Action, event.PostID)
	return nil
}

// HandleCommentEvent records comments once they are visible, which is at
// creation for approved ones and at approval for the rest.
func (h *EventHandler) HandleCommentEvent(ctx context.Context, event *mq.CommentEvent) error {
	visible := event.Status == string(model.CommentApproved)
	if !visible {
		return nil
	}
	if event.UserID != nil && *event.UserID == event.PostAuthorID {
		return nil
	}
	commentId := event.CommentID
	n := &model.Notification{
		ReceiverId: event.PostAuthorID,
		SenderId:   event.UserID,
		Type:       model.NotificationComment,
		PostId:     event.PostID,
		CommentId:  &commentId,
		EventId:    event.EventID,
		Content:    fmt.Sprintf("%s commented on your post", event.AuthorName),
	}
	if err := h.notifications.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("store comment notification: %w", err)
	}
	return nil
}
