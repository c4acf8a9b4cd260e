package websocket

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/hertz-contrib/websocket"
)

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool {
		return true // 允许所有来源连接
	},
}

// Register mounts the live comment feed on r.
func Register(r route.IRoutes, hub *CommentHub) {
	r.GET(`/ws/posts/:id/comments`, append(_postMW(), liveComments(hub))...)
}

func liveComments(hub *CommentHub) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		postId := c.GetInt64(postIdKey)
		err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
			frames, unsubscribe := hub.Subscribe(postId)
			defer unsubscribe()

			// 读协程只用来发现连接断开
			closed := make(chan struct{})
			go func() {
				defer close(closed)
				for {
					if _, _, err := conn.ReadMessage(); err != nil {
						return
					}
				}
			}()

			for {
				select {
				case <-closed:
					return
				case msg, ok := <-frames:
					if !ok {
						return
					}
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						hlog.CtxInfof(ctx, "live comments post=%d: %v", postId, err)
						return
					}
				}
			}
		})
		if err != nil {
			hlog.CtxWarnf(ctx, "websocket upgrade failed: %v", err)
		}
	}
}
