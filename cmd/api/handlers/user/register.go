package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/user/service"
	"BlogSphere.com/pkg/errno"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var param RegisterParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	user, err := clients.UserClient.Register(ctx, &service.RegisterRequest{
		UserName: param.UserName,
		Email:    param.Email,
		Password: param.Password,
	})
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, user)
}
