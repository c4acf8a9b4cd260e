package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/post/dal/db"
	"BlogSphere.com/pkg/constants"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
	"BlogSphere.com/pkg/utils"
)

type PostRequest struct {
	Title      string
	Content    string
	CategoryId *int64
	Tags       []string
	Status     model.PostStatus
}

type PostService struct {
	posts db.PostRepo
}

func NewPostService(posts db.PostRepo) *PostService {
	return &PostService{posts: posts}
}

func canManage(identity *security.Identity, post *model.Post) bool {
	return identity != nil && (identity.IsAdmin() || identity.UserID == post.UserId)
}

func (service *PostService) validate(ctx context.Context, req *PostRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || utf8.RuneCountInString(req.Title) > constants.MaxPostTitleLength {
		return errno.ParamErr.WithMessage("Title must be between 1 and 200 characters")
	}
	if req.Status == "" {
		req.Status = model.PostDraft
	}
	if !req.Status.Valid() {
		return errno.InvalidStatus
	}
	if req.CategoryId != nil {
		category, err := service.posts.GetCategory(ctx, *req.CategoryId)
		if err != nil {
			return errors.WithMessage(err, "load category")
		}
		if category == nil {
			return errno.CategoryNotFound
		}
	}
	return nil
}

func (service *PostService) CreatePost(ctx context.Context, identity *security.Identity, req *PostRequest) (*model.Post, error) {
	if identity == nil {
		return nil, errno.AuthenticationRequired
	}
	if err := service.validate(ctx, req); err != nil {
		return nil, err
	}
	post := &model.Post{
		UserId:        identity.UserID,
		CategoryId:    req.CategoryId,
		Title:         req.Title,
		Content:       req.Content,
		Status:        req.Status,
		DislikePolicy: model.DislikeEnabled,
	}
	if err := service.posts.CreatePost(ctx, post, req.Tags); err != nil {
		return nil, errors.WithMessage(err, "create post")
	}
	return post, nil
}

// loadManaged fetches a post the caller may modify.
func (service *PostService) loadManaged(ctx context.Context, identity *security.Identity, postId int64) (*model.Post, error) {
	if identity == nil {
		return nil, errno.AuthenticationRequired
	}
	post, err := service.posts.GetPost(ctx, postId)
	if err != nil {
		return nil, errors.WithMessage(err, "load post")
	}
	if post == nil {
		return nil, errno.PostNotFound
	}
	if !canManage(identity, post) {
		return nil, errno.Forbidden
	}
	return post, nil
}

// UpdatePost edits title, content, category and tags. Status changes go
// through SetPostStatus. A nil Tags slice keeps the current tags.
func (service *PostService) UpdatePost(ctx context.Context, identity *security.Identity, postId int64, req *PostRequest) (*model.Post, error) {
	post, err := service.loadManaged(ctx, identity, postId)
	if err != nil {
		return nil, err
	}
	req.Status = post.Status
	if err = service.validate(ctx, req); err != nil {
		return nil, err
	}
	post.Title = req.Title
	post.Content = req.Content
	post.CategoryId = req.CategoryId
	if err = service.posts.UpdatePost(ctx, post, req.Tags); err != nil {
		return nil, errors.WithMessage(err, "update post")
	}
	return post, nil
}

func (service *PostService) SetPostStatus(ctx context.Context, identity *security.Identity, postId int64, status model.PostStatus) (*model.Post, error) {
	if !status.Valid() {
		return nil, errno.InvalidStatus
	}
	post, err := service.loadManaged(ctx, identity, postId)
	if err != nil {
		return nil, err
	}
	if err = service.posts.UpdatePostStatus(ctx, postId, status); err != nil {
		return nil, errors.WithMessage(err, "update post status")
	}
	post.Status = status
	return post, nil
}

// SetDislikePolicy is restricted to administrators.
func (service *PostService) SetDislikePolicy(ctx context.Context, identity *security.Identity, postId int64, policy model.DislikePolicy) (*model.Post, error) {
	if identity == nil {
		return nil, errno.AuthenticationRequired
	}
	if !identity.IsAdmin() {
		return nil, errno.Forbidden
	}
	if !policy.Valid() {
		return nil, errno.InvalidStatus
	}
	post, err := service.loadManaged(ctx, identity, postId)
	if err != nil {
		return nil, err
	}
	if err = service.posts.UpdateDislikePolicy(ctx, postId, policy); err != nil {
		return nil, errors.WithMessage(err, "update dislike policy")
	}
	post.DislikePolicy = policy
	return post, nil
}

// DeletePost removes the post with its reactions, comments and tag links in
// one transaction.
func (service *PostService) DeletePost(ctx context.Context, identity *security.Identity, postId int64) error {
	if _, err := service.loadManaged(ctx, identity, postId); err != nil {
		return err
	}
	if err := service.posts.DeletePost(ctx, postId); err != nil {
		return errors.WithMessage(err, "delete post")
	}
	hlog.CtxInfof(ctx, "post %d deleted by user %d", postId, identity.UserID)
	return nil
}

// GetPost returns a published post to anyone; drafts and archived posts only
// to their author and administrators.
func (service *PostService) GetPost(ctx context.Context, identity *security.Identity, postId int64) (*model.PostInfo, error) {
	post, err := service.posts.GetPost(ctx, postId)
	if err != nil {
		return nil, errors.WithMessage(err, "load post")
	}
	if post == nil || (post.Status != model.PostPublished && !canManage(identity, post)) {
		return nil, errno.PostNotFound
	}
	infos, err := service.withDetails(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return infos[0], nil
}

type ListPostsRequest struct {
	CategoryId int64
	UserId     int64
	Tag        string
	PageNum    int64
	PageSize   int64
}

// ListPosts pages through published posts, newest first.
func (service *PostService) ListPosts(ctx context.Context, req *ListPostsRequest) ([]*model.PostInfo, int64, error) {
	pageNum, pageSize := utils.NormalizePage(req.PageNum, req.PageSize)
	filter := db.PostFilter{
		Status:     model.PostPublished,
		CategoryId: req.CategoryId,
		UserId:     req.UserId,
		Tag:        req.Tag,
	}
	posts, total, err := service.posts.ListPosts(ctx, filter, utils.Offset(pageNum, pageSize), int(pageSize))
	if err != nil {
		return nil, 0, errors.WithMessage(err, "list posts")
	}
	infos, err := service.withDetails(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return infos, total, nil
}

func (service *PostService) withDetails(ctx context.Context, posts []*model.Post) ([]*model.PostInfo, error) {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.PostId)
	}
	tags, err := service.posts.GetPostTags(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "load tags")
	}
	stats, err := service.posts.GetPostStats(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "load stats")
	}
	infos := make([]*model.PostInfo, 0, len(posts))
	for _, p := range posts {
		info := &model.PostInfo{Post: *p, Tags: tags[p.PostId]}
		if info.Tags == nil {
			info.Tags = []string{}
		}
		if s := stats[p.PostId]; s != nil {
			info.LikeCount, info.DislikeCount, info.CommentCount = s.Likes, s.Dislikes, s.Comments
		}
		infos = append(infos, info)
	}
	return infos, nil
}
