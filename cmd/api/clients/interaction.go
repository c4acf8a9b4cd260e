package clients

import (
	"BlogSphere.com/cmd/interaction/dal/db"
	"BlogSphere.com/cmd/interaction/service"
	postdb "BlogSphere.com/cmd/post/dal/db"
)

var (
	ReactionClient *service.ReactionService
	CommentClient  *service.CommentService
)

func InitInteraction(d *Deps) {
	posts := postdb.NewPostDB(d.DB)

	var limiter service.RateLimiter
	if d.Limiter != nil {
		limiter = d.Limiter
	}
	ReactionClient = service.NewReactionService(db.NewReactionDB(d.DB), posts, d.Locker, d.Producer)
	CommentClient = service.NewCommentService(db.NewCommentDB(d.DB), posts, limiter, d.Broadcaster, d.Producer)
	if d.ThreadCache != nil {
		CommentClient.WithThreadCache(d.ThreadCache)
	}
}
