package handlers

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/api/router/authfunc"
	"BlogSphere.com/pkg/errno"
)

// LoginUser issues an access token. It is returned in the body and set as
// an http-only cookie for browser clients.
func LoginUser(ctx context.Context, c *app.RequestContext) {
	var loginVar LoginParam
	if err := c.BindAndValidate(&loginVar); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	res, err := clients.UserClient.Login(ctx, loginVar.UserName, loginVar.PassWord)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}

	maxAge := int(time.Until(res.Expire).Seconds())
	c.SetCookie(authfunc.AccessTokenCookie, res.Token, maxAge, "/", "", protocol.CookieSameSiteLaxMode, false, true)
	base.SendResponse(ctx, c, errno.Success, utils.H{
		"user":   res.User,
		"token":  res.Token,
		"expire": res.Expire.Unix(),
	})
}

func LogoutUser(ctx context.Context, c *app.RequestContext) {
	c.SetCookie(authfunc.AccessTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, false, true)
	base.SendResponse(ctx, c, errno.Success, nil)
}
