package handlers

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/support/service"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

type MessageParam struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

// SubmitMessage backs the contact widget and answers with the flat
// {success, message} body.
func SubmitMessage(ctx context.Context, c *app.RequestContext) {
	var param MessageParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResult(ctx, c, errno.ParamErr, nil)
		return
	}
	msg, err := clients.SupportClient.SubmitMessage(ctx, security.IdentityFromContext(ctx), &service.SupportRequest{
		Name:    param.Name,
		Email:   param.Email,
		Message: param.Message,
	})
	if err != nil {
		base.SendResult(ctx, c, err, nil)
		return
	}
	base.SendResult(ctx, c, nil, utils.H{
		"message":    "Thanks, we will get back to you soon.",
		"message_id": msg.MessageId,
	})
}

func ListMessages(ctx context.Context, c *app.RequestContext) {
	var resolved *bool
	if v := c.Query("resolved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			base.SendResponse(ctx, c, errno.ParamErr, nil)
			return
		}
		resolved = &b
	}
	pageNum, pageSize := base.Page(c)
	list, total, err := clients.SupportClient.ListMessages(ctx, resolved, pageNum, pageSize)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, utils.H{
		"messages":  list,
		"total":     total,
		"page_num":  pageNum,
		"page_size": pageSize,
	})
}

func ResolveMessage(ctx context.Context, c *app.RequestContext) {
	messageId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	msg, err := clients.SupportClient.ResolveMessage(ctx, security.IdentityFromContext(ctx), messageId)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, msg)
}
