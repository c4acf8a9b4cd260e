package handlers

import (
	"context"
	"net/url"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

const moderationPage = "/admin/comments"

// SetCommentStatus answers scripts with JSON and plain form submits with a
// redirect back to the moderation page.
func SetCommentStatus(ctx context.Context, c *app.RequestContext) {
	comment, err := setCommentStatus(ctx, c)
	if base.WantsJSON(c) {
		if err != nil {
			base.SendResult(ctx, c, err, nil)
			return
		}
		base.SendResult(ctx, c, nil, utils.H{"comment_id": comment.CommentId, "status": comment.Status})
		return
	}

	target := moderationPage
	if err != nil {
		target += "?error=" + url.QueryEscape(base.ConvertErr(ctx, err).ErrMsg)
	}
	c.Redirect(consts.StatusSeeOther, []byte(target))
}

func setCommentStatus(ctx context.Context, c *app.RequestContext) (*model.Comment, error) {
	commentId, err := base.PathID(c, "id")
	if err != nil {
		return nil, err
	}
	var param CommentStatusParam
	if err := c.BindAndValidate(&param); err != nil {
		return nil, errno.ParamErr
	}
	return clients.CommentClient.SetCommentStatus(ctx, security.IdentityFromContext(ctx), commentId, model.CommentStatus(param.Status))
}

func EditComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	var param EditCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	comment, err := clients.CommentClient.EditComment(ctx, security.IdentityFromContext(ctx), commentId, param.Content)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	if err := clients.CommentClient.DeleteComment(ctx, security.IdentityFromContext(ctx), commentId); err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, nil)
}
