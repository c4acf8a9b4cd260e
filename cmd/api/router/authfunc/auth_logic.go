package authfunc

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

const AccessTokenCookie = "access_token"

// UserLoader reads the current account row behind a token.
type UserLoader interface {
	GetUser(ctx context.Context, userId int64) (*model.User, error)
}

// Identify attaches the caller's identity to the request when a valid token
// is presented. Anonymous requests pass through untouched; a bad token is
// treated as anonymous. Role and email come from the users table, the token
// only names the account.
func Identify(tokens *security.JWTManager, users UserLoader) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		token := bearerToken(c)
		if token == "" {
			c.Next(ctx)
			return
		}
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			hlog.CtxDebugf(ctx, "ignoring invalid token: %v", err)
			c.Next(ctx)
			return
		}
		user, err := users.GetUser(ctx, claims.UserID)
		if err != nil {
			// 账号被删或数据库异常时按游客处理
			if !errors.Is(err, errno.UserNotExist) {
				hlog.CtxErrorf(ctx, "load user %d failed: %+v", claims.UserID, err)
			}
			c.Next(ctx)
			return
		}
		c.Next(security.WithIdentity(ctx, &security.Identity{
			UserID:   user.UserId,
			Username: user.UserName,
			Email:    user.Email,
			Role:     user.Role,
		}))
	}
}

func bearerToken(c *app.RequestContext) string {
	if h := string(c.GetHeader("Authorization")); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
			return strings.TrimSpace(h[7:])
		}
		return ""
	}
	return string(c.Cookie(AccessTokenCookie))
}

// Auth requires a logged in caller.
func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		RequiredFunc(),
	)
}

// Admin requires a logged in administrator.
func Admin() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		RequiredFunc(),
		AdminOnlyFunc(),
	)
}

func RequiredFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if security.IdentityFromContext(ctx) == nil {
			base.SendResult(ctx, c, errno.AuthenticationRequired, nil)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

func AdminOnlyFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if !security.IdentityFromContext(ctx).IsAdmin() {
			base.SendResult(ctx, c, errno.Forbidden, nil)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
