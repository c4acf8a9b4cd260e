package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

type FollowParam struct {
	UserId int64 `form:"user_id" json:"user_id"`
}

// FollowAction follows the user, or unfollows when already following.
func FollowAction(ctx context.Context, c *app.RequestContext) {
	var param FollowParam
	if err := c.BindAndValidate(&param); err != nil || param.UserId <= 0 {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	res, err := clients.RelationClient.ToggleFollow(ctx, security.IdentityFromContext(ctx), param.UserId)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, res)
}

func FollowCounts(ctx context.Context, c *app.RequestContext) {
	userId, err := base.FormID(c, "user_id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	counts, err := clients.RelationClient.Counts(ctx, userId)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, counts)
}
