package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

func LikeAction(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, model.ReactionLike)
}

func DislikeAction(ctx context.Context, c *app.RequestContext) {
	toggle(ctx, c, model.ReactionDislike)
}

func toggle(ctx context.Context, c *app.RequestContext, kind model.ReactionKind) {
	var param ReactionParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind %s: %v", kind, err)
		base.SendResult(ctx, c, errno.ParamErr, nil)
		return
	}
	res, err := clients.ReactionClient.ToggleReaction(ctx, security.IdentityFromContext(ctx), param.PostId, kind)
	if err != nil {
		base.SendResult(ctx, c, err, nil)
		return
	}
	base.SendResult(ctx, c, nil, utils.H{
		"action":         res.Action,
		"total_likes":    res.TotalLikes,
		"total_dislikes": res.TotalDislikes,
	})
}

func LikeCount(ctx context.Context, c *app.RequestContext) {
	count(ctx, c, "total_likes")
}

func DislikeCount(ctx context.Context, c *app.RequestContext) {
	count(ctx, c, "total_dislikes")
}

func count(ctx context.Context, c *app.RequestContext, field string) {
	var param ReactionParam
	if err := c.BindAndValidate(&param); err != nil || param.PostId <= 0 {
		base.SendResult(ctx, c, errno.ParamErr, nil)
		return
	}
	likes, dislikes, err := clients.ReactionClient.CountReactions(ctx, param.PostId)
	if err != nil {
		base.SendResult(ctx, c, err, nil)
		return
	}
	total := likes
	if field == "total_dislikes" {
		total = dislikes
	}
	c.JSON(consts.StatusOK, utils.H{field: total})
}
