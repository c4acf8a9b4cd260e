package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"BlogSphere.com/cmd/interaction/dal/db"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/mq"
	"BlogSphere.com/pkg/security"
)

// ToggleResult is the outcome of a toggle with fresh counts for the post.
type ToggleResult struct {
	Action        string
	TotalLikes    int64
	TotalDislikes int64
}

type ReactionService struct {
	reactions db.ReactionRepo
	posts     PostGetter
	locker    Locker
	producer  mq.MessageProducer
}

// NewReactionService builds the service. locker may be nil.
func NewReactionService(reactions db.ReactionRepo, posts PostGetter, locker Locker, producer mq.MessageProducer) *ReactionService {
	if producer == nil {
		producer = mq.NopProducer{}
	}
	return &ReactionService{
		reactions: reactions,
		posts:     posts,
		locker:    locker,
		producer:  producer,
	}
}

// ToggleReaction flips the caller's reaction of the given kind on a post.
// An existing reaction of that kind is removed; otherwise the opposite one is
// dropped and this one recorded. Both steps share one transaction.
func (service *ReactionService) ToggleReaction(ctx context.Context, identity *security.Identity, postId int64, kind model.ReactionKind) (*ToggleResult, error) {
	if identity == nil {
		return nil, errno.AuthenticationRequired
	}
	if !kind.Valid() {
		return nil, errno.ParamErr.WithMessage("unknown reaction kind")
	}

	post, err := publishedPost(ctx, service.posts, postId)
	if err != nil {
		return nil, errors.WithMessage(err, "load post")
	}
	if post == nil {
		return nil, errno.PostNotFound
	}

	userId := identity.UserID
	if service.locker != nil {
		unlock, err := service.locker.Lock(ctx, postId, userId)
		if err != nil {
			hlog.CtxWarnf(ctx, "reaction lock post=%d user=%d: %v", postId, userId, err)
		} else {
			defer unlock()
		}
	}

	var action string
	err = service.reactions.Transaction(ctx, func(repo db.ReactionRepo) error {
		has, err := repo.HasReaction(ctx, kind, postId, userId)
		if err != nil {
			return err
		}
		if has {
			if _, err = repo.RemoveReaction(ctx, kind, postId, userId); err != nil {
				return err
			}
			action = kind.Removed()
			return nil
		}

		if kind == model.ReactionDislike && post.DislikePolicy != model.DislikeEnabled {
			return errno.DislikeDisabled
		}
		if _, err = repo.RemoveReaction(ctx, kind.Opposite(), postId, userId); err != nil {
			return err
		}
		if err = repo.AddReaction(ctx, kind, postId, userId); err != nil {
			return err
		}
		action = kind.Added()
		return nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "toggle %s post=%d user=%d", kind, postId, userId)
	}

	likes, dislikes, err := service.reactions.CountReactions(ctx, postId)
	if err != nil {
		return nil, errors.WithMessage(err, "count reactions")
	}

	if err := service.producer.PublishReactionEvent(ctx, &mq.ReactionEvent{
		EventID:      mq.NewEventID(),
		PostID:       postId,
		PostAuthorID: post.UserId,
		UserID:       userId,
		Username:     identity.Username,
		Kind:         string(kind),
		Action:       action,
		Timestamp:    mq.Now(),
	}); err != nil {
		hlog.CtxWarnf(ctx, "publish reaction event: %v", err)
	}

	return &ToggleResult{Action: action, TotalLikes: likes, TotalDislikes: dislikes}, nil
}

// CountReactions reads the current like and dislike totals of a published
// post.
func (service *ReactionService) CountReactions(ctx context.Context, postId int64) (likes, dislikes int64, err error) {
	post, err := publishedPost(ctx, service.posts, postId)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "load post")
	}
	if post == nil {
		return 0, 0, errno.PostNotFound
	}
	likes, dislikes, err = service.reactions.CountReactions(ctx, postId)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "count reactions")
	}
	return likes, dislikes, nil
}
