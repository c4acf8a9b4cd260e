package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"

	adminh "BlogSphere.com/cmd/api/handlers/admin"
	interactionh "BlogSphere.com/cmd/api/handlers/interaction"
	notificationh "BlogSphere.com/cmd/api/handlers/notification"
	posth "BlogSphere.com/cmd/api/handlers/post"
	relationh "BlogSphere.com/cmd/api/handlers/relation"
	supporth "BlogSphere.com/cmd/api/handlers/support"
	userh "BlogSphere.com/cmd/api/handlers/user"
	"BlogSphere.com/cmd/api/router/authfunc"
	"BlogSphere.com/pkg/middleware"
)

func register(r *route.Engine) {
	r.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "pong")
	})

	// 点赞 / 点踩
	r.POST("/like", append(authfunc.Auth(), interactionh.LikeAction)...)
	r.GET("/like", interactionh.LikeCount)
	r.POST("/dislike", append(authfunc.Auth(), interactionh.DislikeAction)...)
	r.GET("/dislike", interactionh.DislikeCount)

	// 评论, 游客也可以提交
	r.POST("/comments", interactionh.SubmitComment)

	posts := r.Group("/posts")
	posts.GET("", posth.ListPosts)
	posts.GET("/:id", posth.GetPost)
	posts.GET("/:id/comments", interactionh.ListPostComments)
	posts.POST("", append(authfunc.Auth(), posth.CreatePost)...)
	posts.PUT("/:id", append(authfunc.Auth(), posth.UpdatePost)...)
	posts.POST("/:id/status", append(authfunc.Auth(), posth.SetPostStatus)...)
	posts.DELETE("/:id", append(authfunc.Auth(), posth.DeletePost)...)

	r.GET("/categories", posth.ListCategories)
	r.GET("/tags", posth.ListTags)

	user := r.Group("/user")
	user.POST("/register", userh.Register)
	user.POST("/login", userh.LoginUser)
	user.POST("/logout", userh.LogoutUser)
	user.GET("/:id", userh.GetUserInfo)
	r.GET("/me", append(authfunc.Auth(), userh.Me)...)

	relation := r.Group("/relation")
	relation.POST("/follow", append(authfunc.Auth(), relationh.FollowAction)...)
	relation.GET("/counts", relationh.FollowCounts)
	relation.GET("/list/:kind", relationh.ListRelations)

	r.POST("/support/messages", supporth.SubmitMessage)

	notifications := r.Group("/notifications", authfunc.Auth()...)
	notifications.GET("", notificationh.ListNotifications)
	notifications.POST("/read", notificationh.MarkRead)

	admin := r.Group("/admin", authfunc.Admin()...)
	admin.GET("/search", adminh.Search)
	admin.GET("/comments", interactionh.ListComments)
	admin.POST("/comments/:id/status", interactionh.SetCommentStatus)
	admin.PUT("/comments/:id", interactionh.EditComment)
	admin.DELETE("/comments/:id", interactionh.DeleteComment)
	admin.POST("/posts/:id/dislike_policy", posth.SetDislikePolicy)
	admin.POST("/categories", posth.CreateCategory)
	admin.DELETE("/categories/:id", posth.DeleteCategory)
	admin.GET("/users", userh.ListUsers)
	admin.POST("/users/:id/role", userh.SetRole)
	admin.GET("/support/messages", supporth.ListMessages)
	admin.POST("/support/messages/:id/resolve", supporth.ResolveMessage)
}

// writeResources names every non-GET route for flow control.
func writeResources(r *route.Engine) []string {
	var resources []string
	for _, ri := range r.Routes() {
		if ri.Method == consts.MethodGet || ri.Method == consts.MethodHead {
			continue
		}
		resources = append(resources, middleware.Resource(ri.Method, ri.Path))
	}
	return resources
}
