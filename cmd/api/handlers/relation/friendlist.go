package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/pkg/errno"
)

// ListRelations serves followers, following and friends; the kind comes
// from the route.
func ListRelations(ctx context.Context, c *app.RequestContext) {
	userId, err := base.FormID(c, "user_id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	pageNum, pageSize := base.Page(c)
	list, err := clients.RelationClient.List(ctx, c.Param("kind"), userId, pageNum, pageSize)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, list)
}
