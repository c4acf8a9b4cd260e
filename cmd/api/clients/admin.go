package clients

import (
	"BlogSphere.com/cmd/admin/dal/db"
	"BlogSphere.com/cmd/admin/service"
)

var SearchClient *service.SearchService

func InitAdmin(d *Deps) {
	SearchClient = service.NewSearchService(db.NewSearchDB(d.DB))
}
