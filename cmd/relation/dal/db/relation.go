package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"BlogSphere.com/cmd/model"
)

// FollowUser is a row of a follower or following list.
type FollowUser struct {
	UserId   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

type RelationRepo interface {
	Transaction(ctx context.Context, fn func(repo RelationRepo) error) error
	IsFollowing(ctx context.Context, followerId, userId int64) (bool, error)
	CreateFollow(ctx context.Context, followerId, userId int64) error
	DeleteFollow(ctx context.Context, followerId, userId int64) error
	CountFollowers(ctx context.Context, userId int64) (int64, error)
	CountFollowing(ctx context.Context, userId int64) (int64, error)
	// ListFollowers lists who follows userId, ListFollowing whom userId
	// follows, ListFriends the users following each other with userId.
	ListFollowers(ctx context.Context, userId int64, offset, limit int) ([]*FollowUser, error)
	ListFollowing(ctx context.Context, userId int64, offset, limit int) ([]*FollowUser, error)
	ListFriends(ctx context.Context, userId int64, offset, limit int) ([]*FollowUser, error)
}

type RelationDB struct {
	db *gorm.DB
}

var _ RelationRepo = (*RelationDB)(nil)

func NewRelationDB(db *gorm.DB) *RelationDB {
	return &RelationDB{db: db}
}

func (r *RelationDB) Transaction(ctx context.Context, fn func(repo RelationRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RelationDB{db: tx})
	})
}

func (r *RelationDB) IsFollowing(ctx context.Context, followerId, userId int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND user_id = ?", followerId, userId).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RelationDB) CreateFollow(ctx context.Context, followerId, userId int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Follow{UserId: userId, FollowerId: followerId}).Error
}

func (r *RelationDB) DeleteFollow(ctx context.Context, followerId, userId int64) error {
	return r.db.WithContext(ctx).Where("follower_id = ? AND user_id = ?", followerId, userId).
		Delete(&model.Follow{}).Error
}

func (r *RelationDB) CountFollowers(ctx context.Context, userId int64) (count int64, err error) {
	err = r.db.WithContext(ctx).Model(&model.Follow{}).Where("user_id = ?", userId).Count(&count).Error
	return count, err
}

func (r *RelationDB) CountFollowing(ctx context.Context, userId int64) (count int64, err error) {
	err = r.db.WithContext(ctx).Model(&model.Follow{}).Where("follower_id = ?", userId).Count(&count).Error
	return count, err
}

func (r *RelationDB) ListFollowers(ctx context.Context, userId int64, offset, limit int) ([]*FollowUser, error) {
	list := make([]*FollowUser, 0)
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Select("users.user_id, users.user_name").
		Joins("JOIN users ON users.user_id = follows.follower_id").
		Where("follows.user_id = ?", userId).
		Order("follows.created_at DESC").Offset(offset).Limit(limit).
		Scan(&list).Error
	return list, err
}

func (r *RelationDB) ListFollowing(ctx context.Context, userId int64, offset, limit int) ([]*FollowUser, error) {
	list := make([]*FollowUser, 0)
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Select("users.user_id, users.user_name").
		Joins("JOIN users ON users.user_id = follows.user_id").
		Where("follows.follower_id = ?", userId).
		Order("follows.created_at DESC").Offset(offset).Limit(limit).
		Scan(&list).Error
	return list, err
}

// 互相关注即为朋友
func (r *RelationDB) ListFriends(ctx context.Context, userId int64, offset, limit int) ([]*FollowUser, error) {
	list := make([]*FollowUser, 0)
	err := r.db.WithContext(ctx).Table("follows AS a").
		Select("users.user_id, users.user_name").
		Joins("JOIN follows AS b ON b.user_id = a.follower_id AND b.follower_id = a.user_id").
		Joins("JOIN users ON users.user_id = a.follower_id").
		Where("a.user_id = ?", userId).
		Order("users.user_id").Offset(offset).Limit(limit).
		Scan(&list).Error
	return list, err
}
