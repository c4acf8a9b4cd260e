package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"BlogSphere.com/cmd/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	// The getters return nil when no user matches.
	GetUser(ctx context.Context, userId int64) (*model.User, error)
	GetUserByName(ctx context.Context, userName string) (*model.User, error)
	// UserExists reports whether the name or the email is already taken.
	UserExists(ctx context.Context, userName, email string) (bool, error)
	UpdateRole(ctx context.Context, userId int64, role string) error
	ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error)
}

type UserDB struct {
	db *gorm.DB
}

var _ UserRepo = (*UserDB)(nil)

func NewUserDB(db *gorm.DB) *UserDB {
	return &UserDB{db: db}
}

func (r *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrapf(err, "CreateUser failed, user_name=%s", user.UserName)
	}
	return nil
}

func (r *UserDB) first(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	user := &model.User{}
	err := r.db.WithContext(ctx).Where(query, args...).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserDB) GetUser(ctx context.Context, userId int64) (*model.User, error) {
	return r.first(ctx, "user_id = ?", userId)
}

func (r *UserDB) GetUserByName(ctx context.Context, userName string) (*model.User, error) {
	return r.first(ctx, "user_name = ?", userName)
}

func (r *UserDB) UserExists(ctx context.Context, userName, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_name = ? OR email = ?", userName, email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check user existence")
	}
	return count > 0, nil
}

func (r *UserDB) UpdateRole(ctx context.Context, userId int64, role string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).
		Update("role", role).Error
}

func (r *UserDB) ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := make([]*model.User, 0, limit)
	if err := r.db.WithContext(ctx).Order("user_id").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
