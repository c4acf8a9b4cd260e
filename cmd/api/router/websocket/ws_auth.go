package websocket

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/pkg/security"
)

const postIdKey = "ws_post_id"

func _postMW() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		publishedPostFunc(),
	)
}

// publishedPostFunc refuses the upgrade unless the post is visible to the
// caller.
func publishedPostFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		postId, err := base.PathID(c, "id")
		if err != nil {
			base.SendResult(ctx, c, err, nil)
			c.Abort()
			return
		}
		if _, err := clients.PostClient.GetPost(ctx, security.IdentityFromContext(ctx), postId); err != nil {
			base.SendResult(ctx, c, err, nil)
			c.Abort()
			return
		}
		c.Set(postIdKey, postId)
		c.Next(ctx)
	}
}
