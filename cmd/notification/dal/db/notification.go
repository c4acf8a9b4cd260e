package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"BlogSphere.com/cmd/model"
)

type NotificationRepo interface {
	// CreateNotification ignores a second delivery of the same event.
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, receiverId int64, unreadOnly bool, offset, limit int) ([]*model.Notification, int64, error)
	CountUnread(ctx context.Context, receiverId int64) (int64, error)
	// MarkRead marks the given notifications, or all of them when ids is
	// empty, as read for the receiver.
	MarkRead(ctx context.Context, receiverId int64, ids []int64) (int64, error)
}

type NotificationDB struct {
	db *gorm.DB
}

var _ NotificationRepo = (*NotificationDB)(nil)

func NewNotificationDB(db *gorm.DB) *NotificationDB {
	return &NotificationDB{db: db}
}

func (r *NotificationDB) CreateNotification(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(n).Error
}

func (r *NotificationDB) ListNotifications(ctx context.Context, receiverId int64, unreadOnly bool, offset, limit int) ([]*model.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Notification{}).Where("receiver_id = ?", receiverId)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := make([]*model.Notification, 0, limit)
	if err := query.Order("created_at DESC, notification_id DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *NotificationDB) CountUnread(ctx context.Context, receiverId int64) (count int64, err error) {
	err = r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverId, false).Count(&count).Error
	return count, err
}

func (r *NotificationDB) MarkRead(ctx context.Context, receiverId int64, ids []int64) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverId, false)
	if len(ids) > 0 {
		query = query.Where("notification_id IN ?", ids)
	}
	res := query.Update("is_read", true)
	return res.RowsAffected, res.Error
}
