package handlers

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

type MarkReadParam struct {
	Ids string `form:"ids" json:"ids"`
}

func ListNotifications(ctx context.Context, c *app.RequestContext) {
	unreadOnly, _ := strconv.ParseBool(c.Query("unread_only"))
	pageNum, pageSize := base.Page(c)
	list, err := clients.NotificationClient.List(ctx, security.IdentityFromContext(ctx), unreadOnly, pageNum, pageSize)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, list)
}

// MarkRead marks the given ids read; an empty list marks everything.
func MarkRead(ctx context.Context, c *app.RequestContext) {
	var param MarkReadParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	ids, err := base.IDList(param.Ids)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	n, err := clients.NotificationClient.MarkRead(ctx, security.IdentityFromContext(ctx), ids)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, utils.H{"updated": n})
}
