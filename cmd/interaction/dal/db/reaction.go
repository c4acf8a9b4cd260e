package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"BlogSphere.com/cmd/model"
)

// ReactionRepo reads and writes the likes and dislikes tables.
type ReactionRepo interface {
	// Transaction runs fn against a repo bound to a single database transaction.
	Transaction(ctx context.Context, fn func(repo ReactionRepo) error) error
	HasReaction(ctx context.Context, kind model.ReactionKind, postId, userId int64) (bool, error)
	// AddReaction is a no-op when the row already exists.
	AddReaction(ctx context.Context, kind model.ReactionKind, postId, userId int64) error
	RemoveReaction(ctx context.Context, kind model.ReactionKind, postId, userId int64) (bool, error)
	CountReactions(ctx context.Context, postId int64) (likes, dislikes int64, err error)
}

type ReactionDB struct {
	db *gorm.DB
}

var _ ReactionRepo = (*ReactionDB)(nil)

func NewReactionDB(db *gorm.DB) *ReactionDB {
	return &ReactionDB{db: db}
}

func reactionRow(kind model.ReactionKind, postId, userId int64) interface{} {
	if kind == model.ReactionDislike {
		return &model.Dislike{PostId: postId, UserId: userId}
	}
	return &model.Like{PostId: postId, UserId: userId}
}

func (r *ReactionDB) Transaction(ctx context.Context, fn func(repo ReactionRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReactionDB{db: tx})
	})
}

func (r *ReactionDB) HasReaction(ctx context.Context, kind model.ReactionKind, postId, userId int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(reactionRow(kind, 0, 0)).
		Where("post_id = ? AND user_id = ?", postId, userId).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReactionDB) AddReaction(ctx context.Context, kind model.ReactionKind, postId, userId int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(reactionRow(kind, postId, userId)).Error
}

func (r *ReactionDB) RemoveReaction(ctx context.Context, kind model.ReactionKind, postId, userId int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postId, userId).
		Delete(reactionRow(kind, 0, 0))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ReactionDB) CountReactions(ctx context.Context, postId int64) (likes, dislikes int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postId).Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&model.Dislike{}).Where("post_id = ?", postId).Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
