package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BlogSphere.com/cmd/admin/service"
	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
)

// Search runs the admin search box of the page named by ?page=.
func Search(ctx context.Context, c *app.RequestContext) {
	page := service.AdminPage(c.DefaultQuery("page", string(service.PageDashboard)))
	res, err := clients.SearchClient.Search(ctx, page, c.Query("q"))
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, nil, res)
}
