package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"BlogSphere.com/cmd/interaction/dal/db"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/constants"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/mq"
	"BlogSphere.com/pkg/security"
	"BlogSphere.com/pkg/utils"
)

const (
	MsgCommentPublished = "Your comment has been posted."
	MsgCommentPending   = "Your comment has been submitted and will be visible after moderation."
)

type SubmitCommentRequest struct {
	PostId      int64
	Content     string
	ParentId    *int64
	AuthorName  string
	AuthorEmail string
}

type SubmitCommentResult struct {
	CommentId   int64
	Status      model.CommentStatus
	Message     string
	CommentHTML string
}

type CommentService struct {
	comments    db.CommentRepo
	posts       PostGetter
	limiter     RateLimiter
	broadcaster CommentBroadcaster
	producer    mq.MessageProducer
	threads     ThreadCache
}

// NewCommentService builds the service. limiter and broadcaster may be nil.
func NewCommentService(comments db.CommentRepo, posts PostGetter, limiter RateLimiter, broadcaster CommentBroadcaster, producer mq.MessageProducer) *CommentService {
	if producer == nil {
		producer = mq.NopProducer{}
	}
	return &CommentService{
		comments:    comments,
		posts:       posts,
		limiter:     limiter,
		broadcaster: broadcaster,
		producer:    producer,
	}
}

// WithThreadCache makes ListPostComments read through cache. Every
// comment mutation drops the cached thread of its post.
func (service *CommentService) WithThreadCache(cache ThreadCache) *CommentService {
	service.threads = cache
	return service
}

func (service *CommentService) invalidate(ctx context.Context, postId int64) {
	if service.threads == nil {
		return
	}
	if err := service.threads.Invalidate(ctx, postId); err != nil {
		hlog.CtxWarnf(ctx, "invalidate comment thread of post %d: %v", postId, err)
	}
}

// validateCommentContent trims content and checks its length in characters.
func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > constants.MaxCommentLength {
		return "", errno.InvalidContent
	}
	return content, nil
}

// SubmitComment validates and stores a comment from a user or a guest
// (identity nil). Nothing is written unless every check passes.
func (service *CommentService) SubmitComment(ctx context.Context, identity *security.Identity, req *SubmitCommentRequest) (*SubmitCommentResult, error) {
	post, err := publishedPost(ctx, service.posts, req.PostId)
	if err != nil {
		return nil, errors.WithMessage(err, "load post")
	}
	if post == nil {
		return nil, errno.PostNotFound
	}

	content, err := validateCommentContent(req.Content)
	if err != nil {
		return nil, err
	}

	parentId, err := service.resolveParent(ctx, req.PostId, req.ParentId)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostId:          req.PostId,
		Content:         content,
		ParentCommentId: parentId,
		Status:          model.CommentPending,
	}
	var limitKey string
	var limit int64
	window := constants.UserCommentWindow
	if identity != nil {
		userId := identity.UserID
		comment.UserId = &userId
		comment.AuthorName = identity.Username
		comment.AuthorEmail = identity.Email
		limitKey = "user:" + strconv.FormatInt(userId, 10)
		limit = constants.UserCommentLimit
	} else {
		name := strings.TrimSpace(req.AuthorName)
		email := strings.TrimSpace(req.AuthorEmail)
		if name == "" || utf8.RuneCountInString(name) > constants.MaxGuestNameLength || !utils.IsValidEmail(email) {
			return nil, errno.InvalidGuestIdentity
		}
		comment.AuthorName = name
		comment.AuthorEmail = email
		limitKey = "guest:" + utils.NormalizeEmail(email)
		limit = constants.GuestCommentLimit
		window = constants.GuestCommentWindow
	}

	if err = service.checkRate(ctx, limitKey, limit, window); err != nil {
		return nil, err
	}

	if identity.IsAdmin() {
		comment.Status = model.CommentApproved
	}
	if err = service.comments.CreateComment(ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "create comment")
	}
	if comment.Status == model.CommentApproved {
		service.invalidate(ctx, comment.PostId)
	}

	result := &SubmitCommentResult{
		CommentId: comment.CommentId,
		Status:    comment.Status,
		Message:   MsgCommentPending,
	}
	if comment.Status == model.CommentApproved {
		result.Message = MsgCommentPublished
		html, err := RenderCommentHTML(comment)
		if err != nil {
			hlog.CtxErrorf(ctx, "render comment %d: %v", comment.CommentId, err)
		} else {
			result.CommentHTML = html
			service.broadcast(comment, html)
		}
	}

	service.publish(ctx, mq.CommentCreated, post, comment)
	return result, nil
}

// resolveParent checks the parent belongs to the post. Replies to replies
// are attached to the top-level comment so threads stay one level deep.
func (service *CommentService) resolveParent(ctx context.Context, postId int64, parentId *int64) (*int64, error) {
	if parentId == nil {
		return nil, nil
	}
	parent, err := service.comments.GetComment(ctx, *parentId)
	if err != nil {
		return nil, errors.WithMessage(err, "load parent comment")
	}
	if parent == nil || parent.PostId != postId {
		return nil, errno.InvalidParent
	}
	if parent.ParentCommentId != nil {
		top := *parent.ParentCommentId
		return &top, nil
	}
	id := parent.CommentId
	return &id, nil
}

// checkRate records an attempt for key. A limiter error lets the comment
// through.
func (service *CommentService) checkRate(ctx context.Context, key string, limit int64, window time.Duration) error {
	if service.limiter == nil {
		return nil
	}
	res, err := service.limiter.Allow(ctx, fmt.Sprintf(constants.CommentRateLimitKey, key), limit, window)
	if err != nil {
		hlog.CtxWarnf(ctx, "comment rate limiter unavailable: %v", err)
		return nil
	}
	if !res.Allowed {
		return errno.RateLimited
	}
	return nil
}

func (service *CommentService) broadcast(comment *model.Comment, html string) {
	if service.broadcaster != nil {
		service.broadcaster.BroadcastComment(comment.PostId, comment, html)
	}
}

func (service *CommentService) publish(ctx context.Context, eventType string, post *model.Post, comment *model.Comment) {
	err := service.producer.PublishCommentEvent(ctx, &mq.CommentEvent{
		EventID:         mq.NewEventID(),
		Type:            eventType,
		CommentID:       comment.CommentId,
		PostID:          comment.PostId,
		PostAuthorID:    post.UserId,
		UserID:          comment.UserId,
		AuthorName:      comment.AuthorName,
		ParentCommentID: comment.ParentCommentId,
		Status:          string(comment.Status),
		Timestamp:       mq.Now(),
	})
	if err != nil {
		hlog.CtxWarnf(ctx, "publish comment event: %v", err)
	}
}

func requireAdmin(identity *security.Identity) error {
	if identity == nil {
		return errno.AuthenticationRequired
	}
	if !identity.IsAdmin() {
		return errno.Forbidden
	}
	return nil
}

func (service *CommentService) getComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	comment, err := service.comments.GetComment(ctx, commentId)
	if err != nil {
		return nil, errors.WithMessage(err, "load comment")
	}
	if comment == nil {
		return nil, errno.CommentNotFound
	}
	return comment, nil
}

// SetCommentStatus moves a comment to any of the three statuses. Comments
// becoming approved are pushed to live readers of the post.
func (service *CommentService) SetCommentStatus(ctx context.Context, identity *security.Identity, commentId int64, status model.CommentStatus) (*model.Comment, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, errno.InvalidStatus
	}
	comment, err := service.getComment(ctx, commentId)
	if err != nil {
		return nil, err
	}

	previous := comment.Status
	if err = service.comments.UpdateCommentStatus(ctx, commentId, status); err != nil {
		return nil, errors.WithMessage(err, "update comment status")
	}
	comment.Status = status
	service.invalidate(ctx, comment.PostId)
	hlog.CtxInfof(ctx, "comment %d: %s -> %s by user %d", commentId, previous, status, identity.UserID)

	if status == model.CommentApproved && previous != model.CommentApproved {
		if html, err := RenderCommentHTML(comment); err != nil {
			hlog.CtxErrorf(ctx, "render comment %d: %v", commentId, err)
		} else {
			service.broadcast(comment, html)
		}
		if post, err := service.posts.GetPost(ctx, comment.PostId); err == nil && post != nil {
			service.publish(ctx, mq.CommentApproved, post, comment)
		}
	}
	return comment, nil
}

func (service *CommentService) EditComment(ctx context.Context, identity *security.Identity, commentId int64, content string) (*model.Comment, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	comment, err := service.getComment(ctx, commentId)
	if err != nil {
		return nil, err
	}
	if err = service.comments.UpdateCommentContent(ctx, commentId, content); err != nil {
		return nil, errors.WithMessage(err, "update comment content")
	}
	comment.Content = content
	service.invalidate(ctx, comment.PostId)
	return comment, nil
}

func (service *CommentService) DeleteComment(ctx context.Context, identity *security.Identity, commentId int64) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	comment, err := service.getComment(ctx, commentId)
	if err != nil {
		return err
	}
	if err := service.comments.DeleteCommentTree(ctx, commentId); err != nil {
		return errors.WithMessage(err, "delete comment")
	}
	service.invalidate(ctx, comment.PostId)
	return nil
}

// ListComments is the moderation queue. An empty status lists everything.
func (service *CommentService) ListComments(ctx context.Context, status model.CommentStatus, pageNum, pageSize int64) ([]*model.Comment, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, errno.InvalidStatus
	}
	pageNum, pageSize = utils.NormalizePage(pageNum, pageSize)
	list, total, err := service.comments.ListCommentsByStatus(ctx, status, utils.Offset(pageNum, pageSize), int(pageSize))
	if err != nil {
		return nil, 0, errors.WithMessage(err, "list comments")
	}
	return list, total, nil
}

// ListPostComments returns the approved comments of a published post as
// top-level threads with their replies. Replies whose parent is not visible
// are left out.
func (service *CommentService) ListPostComments(ctx context.Context, postId int64) ([]*model.CommentThread, error) {
	post, err := publishedPost(ctx, service.posts, postId)
	if err != nil {
		return nil, errors.WithMessage(err, "load post")
	}
	if post == nil {
		return nil, errno.PostNotFound
	}

	if service.threads != nil {
		cached, err := service.threads.GetThreads(ctx, postId)
		if err != nil {
			hlog.CtxWarnf(ctx, "read comment thread cache of post %d: %v", postId, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	list, err := service.comments.ListApprovedComments(ctx, postId)
	if err != nil {
		return nil, errors.WithMessage(err, "list post comments")
	}

	threads := make([]*model.CommentThread, 0)
	byId := make(map[int64]*model.CommentThread)
	for _, c := range list {
		if c.ParentCommentId == nil {
			thread := &model.CommentThread{Comment: *c, Replies: make([]*model.Comment, 0)}
			threads = append(threads, thread)
			byId[c.CommentId] = thread
		}
	}
	for _, c := range list {
		if c.ParentCommentId == nil {
			continue
		}
		if thread, ok := byId[*c.ParentCommentId]; ok {
			thread.Replies = append(thread.Replies, c)
		}
	}

	if service.threads != nil {
		if err := service.threads.SetThreads(ctx, postId, threads); err != nil {
			hlog.CtxWarnf(ctx, "cache comment thread of post %d: %v", postId, err)
		}
	}
	return threads, nil
}
