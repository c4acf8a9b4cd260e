package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/errno"
)

// ListPostComments returns the approved thread of a post.
func ListPostComments(ctx context.Context, c *app.RequestContext) {
	postId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	threads, err := clients.CommentClient.ListPostComments(ctx, postId)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, utils.H{"comments": threads})
}

// ListComments is the moderation queue.
func ListComments(ctx context.Context, c *app.RequestContext) {
	var param ListCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	pageNum, pageSize := base.Page(c)
	list, total, err := clients.CommentClient.ListComments(ctx, model.CommentStatus(param.Status), pageNum, pageSize)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, utils.H{
		"comments":  list,
		"total":     total,
		"page_num":  pageNum,
		"page_size": pageSize,
	})
}
