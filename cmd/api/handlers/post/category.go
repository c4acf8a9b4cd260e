package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

func ListCategories(ctx context.Context, c *app.RequestContext) {
	list, err := clients.PostClient.ListCategories(ctx)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, list)
}

func CreateCategory(ctx context.Context, c *app.RequestContext) {
	var param CategoryParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	category, err := clients.PostClient.CreateCategory(ctx, security.IdentityFromContext(ctx), param.Name, param.Description)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, category)
}

func DeleteCategory(ctx context.Context, c *app.RequestContext) {
	categoryId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	if err := clients.PostClient.DeleteCategory(ctx, security.IdentityFromContext(ctx), categoryId); err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, nil)
}

func ListTags(ctx context.Context, c *app.RequestContext) {
	list, err := clients.PostClient.ListTags(ctx)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, list)
}
