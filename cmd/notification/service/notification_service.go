package service

import (
	"context"

	"github.com/pkg/errors"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/notification/dal/db"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
	"BlogSphere.com/pkg/utils"
)

type NotificationService struct {
	notifications db.NotificationRepo
}

func NewNotificationService(notifications db.NotificationRepo) *NotificationService {
	return &NotificationService{notifications: notifications}
}

type NotificationList struct {
	Notifications []*model.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Unread        int64                 `json:"unread"`
}

func (service *NotificationService) List(ctx context.Context, identity *security.Identity, unreadOnly bool, pageNum, pageSize int64) (*NotificationList, error) {
	if identity == nil {
		return nil, errno.AuthenticationRequired
	}
	pageNum, pageSize = utils.NormalizePage(pageNum, pageSize)
	list, total, err := service.notifications.ListNotifications(ctx, identity.UserID, unreadOnly, utils.Offset(pageNum, pageSize), int(pageSize))
	if err != nil {
		return nil, errors.WithMessage(err, "list notifications")
	}
	unread, err := service.notifications.CountUnread(ctx, identity.UserID)
	if err != nil {
		return nil, errors.WithMessage(err, "count unread")
	}
	return &NotificationList{Notifications: list, Total: total, Unread: unread}, nil
}

func (service *NotificationService) MarkRead(ctx context.Context, identity *security.Identity, ids []int64) (int64, error) {
	if identity == nil {
		return 0, errno.AuthenticationRequired
	}
	n, err := service.notifications.MarkRead(ctx, identity.UserID, ids)
	if err != nil {
		return 0, errors.WithMessage(err, "mark read")
	}
	return n, nil
}
