package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"BlogSphere.com/cmd/model"
)

type SupportRepo interface {
	CreateMessage(ctx context.Context, msg *model.SupportMessage) error
	// GetMessage returns nil when the message does not exist.
	GetMessage(ctx context.Context, messageId int64) (*model.SupportMessage, error)
	ListMessages(ctx context.Context, resolved *bool, offset, limit int) ([]*model.SupportMessage, int64, error)
	ResolveMessage(ctx context.Context, messageId int64, at time.Time) error
}

type SupportDB struct {
	db *gorm.DB
}

var _ SupportRepo = (*SupportDB)(nil)

func NewSupportDB(db *gorm.DB) *SupportDB {
	return &SupportDB{db: db}
}

func (r *SupportDB) CreateMessage(ctx context.Context, msg *model.SupportMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *SupportDB) GetMessage(ctx context.Context, messageId int64) (*model.SupportMessage, error) {
	msg := &model.SupportMessage{}
	err := r.db.WithContext(ctx).Where("message_id = ?", messageId).First(msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *SupportDB) ListMessages(ctx context.Context, resolved *bool, offset, limit int) ([]*model.SupportMessage, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.SupportMessage{})
	if resolved != nil {
		query = query.Where("resolved = ?", *resolved)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := make([]*model.SupportMessage, 0, limit)
	if err := query.Order("created_at DESC, message_id DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SupportDB) ResolveMessage(ctx context.Context, messageId int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.SupportMessage{}).Where("message_id = ?", messageId).
		Updates(map[string]interface{}{"resolved": true, "resolved_at": at}).Error
}
