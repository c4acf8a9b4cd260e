package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

func GetUserInfo(ctx context.Context, c *app.RequestContext) {
	userId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	user, err := clients.UserClient.GetUser(ctx, userId)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, user)
}

// Me returns the caller's own account.
func Me(ctx context.Context, c *app.RequestContext) {
	identity := security.IdentityFromContext(ctx)
	user, err := clients.UserClient.GetUser(ctx, identity.UserID)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, user)
}

func ListUsers(ctx context.Context, c *app.RequestContext) {
	pageNum, pageSize := base.Page(c)
	list, total, err := clients.UserClient.ListUsers(ctx, pageNum, pageSize)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, utils.H{
		"users":     list,
		"total":     total,
		"page_num":  pageNum,
		"page_size": pageSize,
	})
}

func SetRole(ctx context.Context, c *app.RequestContext) {
	userId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	var param RoleParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	user, err := clients.UserClient.SetRole(ctx, security.IdentityFromContext(ctx), userId, param.Role)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, user)
}
