package clients

import (
	"BlogSphere.com/cmd/support/dal/db"
	"BlogSphere.com/cmd/support/service"
)

var SupportClient *service.SupportService

func InitSupport(d *Deps) {
	var limiter service.RateLimiter
	if d.Limiter != nil {
		limiter = d.Limiter
	}
	SupportClient = service.NewSupportService(db.NewSupportDB(d.DB), limiter)
}
