package db

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"BlogSphere.com/cmd/model"
)

// PostFilter narrows ListPosts. Zero values match everything.
type PostFilter struct {
	Status     model.PostStatus
	CategoryId int64
	UserId     int64
	Tag        string
}

type PostStats struct {
	Likes    int64
	Dislikes int64
	Comments int64
}

type PostRepo interface {
	// CreatePost stores the post and links its tags, creating missing ones.
	CreatePost(ctx context.Context, post *model.Post, tags []string) error
	// UpdatePost saves title, content and category. A nil tags slice keeps
	// the current tags.
	UpdatePost(ctx context.Context, post *model.Post, tags []string) error
	UpdatePostStatus(ctx context.Context, postId int64, status model.PostStatus) error
	UpdateDislikePolicy(ctx context.Context, postId int64, policy model.DislikePolicy) error
	// GetPost returns nil when the post does not exist.
	GetPost(ctx context.Context, postId int64) (*model.Post, error)
	ListPosts(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error)
	GetPostTags(ctx context.Context, postIds []int64) (map[int64][]string, error)
	GetPostStats(ctx context.Context, postIds []int64) (map[int64]*PostStats, error)
	// DeletePost removes the post and everything hanging off it atomically.
	DeletePost(ctx context.Context, postId int64) error

	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, categoryId int64) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	DeleteCategory(ctx context.Context, categoryId int64) error
	ListTags(ctx context.Context) ([]*model.Tag, error)
}

type PostDB struct {
	db *gorm.DB
}

var _ PostRepo = (*PostDB)(nil)

func NewPostDB(db *gorm.DB) *PostDB {
	return &PostDB{db: db}
}

func (r *PostDB) CreatePost(ctx context.Context, post *model.Post, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return errors.Wrap(err, "create post")
		}
		return setPostTags(tx, post.PostId, tags)
	})
}

func (r *PostDB) UpdatePost(ctx context.Context, post *model.Post, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Post{}).Where("post_id = ?", post.PostId).
			Select("title", "content", "category_id").
			Updates(post).Error
		if err != nil {
			return errors.Wrap(err, "update post")
		}
		if tags == nil {
			return nil
		}
		return setPostTags(tx, post.PostId, tags)
	})
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func setPostTags(tx *gorm.DB, postId int64, tags []string) error {
	if err := tx.Where("post_id = ?", postId).Delete(&model.PostTag{}).Error; err != nil {
		return errors.Wrap(err, "clear post tags")
	}
	for _, name := range normalizeTags(tags) {
		tag := model.Tag{}
		if err := tx.Where(model.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return errors.Wrapf(err, "tag %q", name)
		}
		link := &model.PostTag{PostId: postId, TagId: tag.TagId}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
			return errors.Wrap(err, "link tag")
		}
	}
	return nil
}

func (r *PostDB) UpdatePostStatus(ctx context.Context, postId int64, status model.PostStatus) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).Where("post_id = ?", postId).
		Update("status", status).Error
}

func (r *PostDB) UpdateDislikePolicy(ctx context.Context, postId int64, policy model.DislikePolicy) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).Where("post_id = ?", postId).
		Update("dislike_policy", policy).Error
}

func (r *PostDB) GetPost(ctx context.Context, postId int64) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.WithContext(ctx).Where("post_id = ?", postId).First(post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostDB) ListPosts(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.Status != "" {
		query = query.Where("posts.status = ?", filter.Status)
	}
	if filter.CategoryId != 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryId)
	}
	if filter.UserId != 0 {
		query = query.Where("posts.user_id = ?", filter.UserId)
	}
	if filter.Tag != "" {
		query = query.Where("posts.post_id IN (?)",
			r.db.Model(&model.PostTag{}).Select("post_tags.post_id").
				Joins("JOIN tags ON tags.tag_id = post_tags.tag_id").
				Where("tags.name = ?", strings.ToLower(strings.TrimSpace(filter.Tag))))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := make([]*model.Post, 0, limit)
	if err := query.Order("posts.created_at DESC, posts.post_id DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PostDB) GetPostTags(ctx context.Context, postIds []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(postIds))
	if len(postIds) == 0 {
		return result, nil
	}
	var rows []struct {
		PostId int64
		Name   string
	}
	err := r.db.WithContext(ctx).Model(&model.PostTag{}).
		Select("post_tags.post_id, tags.name").
		Joins("JOIN tags ON tags.tag_id = post_tags.tag_id").
		Where("post_tags.post_id IN ?", postIds).
		Order("tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostId] = append(result[row.PostId], row.Name)
	}
	return result, nil
}

type postCount struct {
	PostId int64
	N      int64
}

func (r *PostDB) countBy(ctx context.Context, table interface{}, postIds []int64, extra ...interface{}) ([]postCount, error) {
	var rows []postCount
	query := r.db.WithContext(ctx).Model(table).Select("post_id, COUNT(*) AS n").Where("post_id IN ?", postIds)
	if len(extra) > 0 {
		query = query.Where(extra[0], extra[1:]...)
	}
	err := query.Group("post_id").Scan(&rows).Error
	return rows, err
}

// GetPostStats counts likes, dislikes and approved comments per post.
func (r *PostDB) GetPostStats(ctx context.Context, postIds []int64) (map[int64]*PostStats, error) {
	stats := make(map[int64]*PostStats, len(postIds))
	for _, id := range postIds {
		stats[id] = &PostStats{}
	}
	if len(postIds) == 0 {
		return stats, nil
	}

	likes, err := r.countBy(ctx, &model.Like{}, postIds)
	if err != nil {
		return nil, err
	}
	for _, c := range likes {
		stats[c.PostId].Likes = c.N
	}
	dislikes, err := r.countBy(ctx, &model.Dislike{}, postIds)
	if err != nil {
		return nil, err
	}
	for _, c := range dislikes {
		stats[c.PostId].Dislikes = c.N
	}
	comments, err := r.countBy(ctx, &model.Comment{}, postIds, "status = ?", model.CommentApproved)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		stats[c.PostId].Comments = c.N
	}
	return stats, nil
}

func (r *PostDB) DeletePost(ctx context.Context, postId int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&model.Like{}, &model.Dislike{}, &model.Comment{}, &model.PostTag{}} {
			if err := tx.Where("post_id = ?", postId).Delete(dependent).Error; err != nil {
				return errors.Wrapf(err, "delete %T of post %d", dependent, postId)
			}
		}
		if err := tx.Where("post_id = ?", postId).Delete(&model.Post{}).Error; err != nil {
			return errors.Wrapf(err, "delete post %d", postId)
		}
		return nil
	})
}

func (r *PostDB) CreateCategory(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostDB) GetCategory(ctx context.Context, categoryId int64) (*model.Category, error) {
	category := &model.Category{}
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryId).First(category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *PostDB) ListCategories(ctx context.Context) ([]*model.Category, error) {
	list := make([]*model.Category, 0)
	if err := r.db.WithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteCategory detaches the category from its posts before removing it.
func (r *PostDB) DeleteCategory(ctx context.Context, categoryId int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).Where("category_id = ?", categoryId).
			Update("category_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach posts")
		}
		return tx.Where("category_id = ?", categoryId).Delete(&model.Category{}).Error
	})
}

func (r *PostDB) ListTags(ctx context.Context) ([]*model.Tag, error) {
	list := make([]*model.Tag, 0)
	if err := r.db.WithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
