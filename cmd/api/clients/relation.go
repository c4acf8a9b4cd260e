package clients

import (
	"BlogSphere.com/cmd/relation/dal/db"
	"BlogSphere.com/cmd/relation/service"
	userdb "BlogSphere.com/cmd/user/dal/db"
)

var RelationClient *service.RelationService

func InitRelation(d *Deps) {
	RelationClient = service.NewRelationService(db.NewRelationDB(d.DB), userdb.NewUserDB(d.DB))
}
