package service

import (
	"context"

	"github.com/pkg/errors"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/relation/dal/db"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
	"BlogSphere.com/pkg/utils"
)

// UserGetter loads a user, returning nil when it does not exist.
type UserGetter interface {
	GetUser(ctx context.Context, userId int64) (*model.User, error)
}

type FollowResult struct {
	Following bool  `json:"following"`
	Followers int64 `json:"followers"`
}

type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type RelationService struct {
	relations db.RelationRepo
	users     UserGetter
}

func NewRelationService(relations db.RelationRepo, users UserGetter) *RelationService {
	return &RelationService{relations: relations, users: users}
}

// ToggleFollow follows userId, or unfollows when already following.
func (service *RelationService) ToggleFollow(ctx context.Context, identity *security.Identity, userId int64) (*FollowResult, error) {
	if identity == nil {
		return nil, errno.AuthenticationRequired
	}
	if identity.UserID == userId {
		return nil, errno.ParamErr.WithMessage("You cannot follow yourself")
	}
	target, err := service.users.GetUser(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "load user")
	}
	if target == nil {
		return nil, errno.UserNotExist
	}

	result := &FollowResult{}
	err = service.relations.Transaction(ctx, func(repo db.RelationRepo) error {
		following, err := repo.IsFollowing(ctx, identity.UserID, userId)
		if err != nil {
			return err
		}
		if following {
			err = repo.DeleteFollow(ctx, identity.UserID, userId)
		} else {
			err = repo.CreateFollow(ctx, identity.UserID, userId)
		}
		result.Following = !following
		return err
	})
	if err != nil {
		return nil, errors.WithMessage(err, "toggle follow")
	}

	if result.Followers, err = service.relations.CountFollowers(ctx, userId); err != nil {
		return nil, errors.WithMessage(err, "count followers")
	}
	return result, nil
}

func (service *RelationService) Counts(ctx context.Context, userId int64) (*FollowCounts, error) {
	followers, err := service.relations.CountFollowers(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "count followers")
	}
	following, err := service.relations.CountFollowing(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "count following")
	}
	return &FollowCounts{Followers: followers, Following: following}, nil
}

const (
	ListFollowers = "followers"
	ListFollowing = "following"
	ListFriends   = "friends"
)

func (service *RelationService) List(ctx context.Context, kind string, userId, pageNum, pageSize int64) ([]*db.FollowUser, error) {
	pageNum, pageSize = utils.NormalizePage(pageNum, pageSize)
	offset, limit := utils.Offset(pageNum, pageSize), int(pageSize)

	var list []*db.FollowUser
	var err error
	switch kind {
	case ListFollowers:
		list, err = service.relations.ListFollowers(ctx, userId, offset, limit)
	case ListFollowing:
		list, err = service.relations.ListFollowing(ctx, userId, offset, limit)
	case ListFriends:
		list, err = service.relations.ListFriends(ctx, userId, offset, limit)
	default:
		return nil, errno.ParamErr
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "list %s", kind)
	}
	return list, nil
}
