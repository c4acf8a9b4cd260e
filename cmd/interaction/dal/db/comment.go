package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"BlogSphere.com/cmd/model"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// GetComment returns nil when the comment does not exist.
	GetComment(ctx context.Context, commentId int64) (*model.Comment, error)
	UpdateCommentStatus(ctx context.Context, commentId int64, status model.CommentStatus) error
	UpdateCommentContent(ctx context.Context, commentId int64, content string) error
	// DeleteCommentTree removes a comment together with its replies.
	DeleteCommentTree(ctx context.Context, commentId int64) error
	ListCommentsByStatus(ctx context.Context, status model.CommentStatus, offset, limit int) ([]*model.Comment, int64, error)
	ListApprovedComments(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type CommentDB struct {
	db *gorm.DB
}

var _ CommentRepo = (*CommentDB)(nil)

func NewCommentDB(db *gorm.DB) *CommentDB {
	return &CommentDB{db: db}
}

func (r *CommentDB) CreateComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentDB) GetComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.WithContext(ctx).Where("comment_id = ?", commentId).First(comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentDB) UpdateCommentStatus(ctx context.Context, commentId int64, status model.CommentStatus) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentId).
		Update("status", status).Error
}

func (r *CommentDB) UpdateCommentContent(ctx context.Context, commentId int64, content string) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentId).
		Update("content", content).Error
}

func (r *CommentDB) DeleteCommentTree(ctx context.Context, commentId int64) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ? OR parent_comment_id = ?", commentId, commentId).
		Delete(&model.Comment{}).Error
}

// ListCommentsByStatus pages through comments newest first. An empty status
// lists every comment.
func (r *CommentDB) ListCommentsByStatus(ctx context.Context, status model.CommentStatus, offset, limit int) ([]*model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := make([]*model.Comment, 0, limit)
	if err := query.Order("created_at DESC, comment_id DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListApprovedComments returns the approved comments of a post oldest first.
func (r *CommentDB) ListApprovedComments(ctx context.Context, postId int64) ([]*model.Comment, error) {
	list := make([]*model.Comment, 0)
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND status = ?", postId, model.CommentApproved).
		Order("created_at ASC, comment_id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
