package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/interaction/service"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
	bsutils "BlogSphere.com/pkg/utils"
)

func SubmitComment(ctx context.Context, c *app.RequestContext) {
	var param SubmitCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind comment: %v", err)
		base.SendResult(ctx, c, errno.ParamErr, nil)
		return
	}
	parentId, err := bsutils.ParseOptionalID(param.ParentCommentId)
	if err != nil {
		base.SendResult(ctx, c, errno.InvalidParent, nil)
		return
	}

	res, err := clients.CommentClient.SubmitComment(ctx, security.IdentityFromContext(ctx), &service.SubmitCommentRequest{
		PostId:      param.PostId,
		Content:     param.Content,
		ParentId:    parentId,
		AuthorName:  param.AuthorName,
		AuthorEmail: param.AuthorEmail,
	})
	if err != nil {
		base.SendResult(ctx, c, err, nil)
		return
	}
	fields := utils.H{
		"message":    res.Message,
		"comment_id": res.CommentId,
		"status":     res.Status,
	}
	if res.CommentHTML != "" {
		fields["comment_html"] = res.CommentHTML
	}
	base.SendResult(ctx, c, nil, fields)
}
