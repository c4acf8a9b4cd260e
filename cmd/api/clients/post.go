package clients

import (
	"BlogSphere.com/cmd/post/dal/db"
	"BlogSphere.com/cmd/post/service"
)

var PostClient *service.PostService

func InitPost(d *Deps) {
	PostClient = service.NewPostService(db.NewPostDB(d.DB))
}
