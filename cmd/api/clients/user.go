package clients

import (
	"BlogSphere.com/cmd/user/dal/db"
	"BlogSphere.com/cmd/user/service"
)

var UserClient *service.UserService

func InitUser(d *Deps) {
	var limiter service.RateLimiter
	if d.Limiter != nil {
		limiter = d.Limiter
	}
	UserClient = service.NewUserService(db.NewUserDB(d.DB), d.Tokens, limiter, d.IsAdminEmail)
}
