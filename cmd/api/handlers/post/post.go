package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/handlers/base"
	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/post/service"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

func CreatePost(ctx context.Context, c *app.RequestContext) {
	var param PostParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind post: %v", err)
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	req, err := param.request()
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	post, err := clients.PostClient.CreatePost(ctx, security.IdentityFromContext(ctx), req)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, post)
}

func UpdatePost(ctx context.Context, c *app.RequestContext) {
	postId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	var param PostParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	req, err := param.request()
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	post, err := clients.PostClient.UpdatePost(ctx, security.IdentityFromContext(ctx), postId, req)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, post)
}

func SetPostStatus(ctx context.Context, c *app.RequestContext) {
	postId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	var param StatusParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	post, err := clients.PostClient.SetPostStatus(ctx, security.IdentityFromContext(ctx), postId, model.PostStatus(param.Status))
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, post)
}

func SetDislikePolicy(ctx context.Context, c *app.RequestContext) {
	postId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	var param PolicyParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	post, err := clients.PostClient.SetDislikePolicy(ctx, security.IdentityFromContext(ctx), postId, model.DislikePolicy(param.Policy))
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, post)
}

func DeletePost(ctx context.Context, c *app.RequestContext) {
	postId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	if err := clients.PostClient.DeletePost(ctx, security.IdentityFromContext(ctx), postId); err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, nil)
}

func GetPost(ctx context.Context, c *app.RequestContext) {
	postId, err := base.PathID(c, "id")
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	post, err := clients.PostClient.GetPost(ctx, security.IdentityFromContext(ctx), postId)
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, post)
}

func ListPosts(ctx context.Context, c *app.RequestContext) {
	var param ListPostParam
	if err := c.BindAndValidate(&param); err != nil {
		base.SendResponse(ctx, c, errno.ParamErr, nil)
		return
	}
	pageNum, pageSize := base.Page(c)
	posts, total, err := clients.PostClient.ListPosts(ctx, &service.ListPostsRequest{
		CategoryId: param.CategoryId,
		UserId:     param.UserId,
		Tag:        param.Tag,
		PageNum:    pageNum,
		PageSize:   pageSize,
	})
	if err != nil {
		base.SendResponse(ctx, c, err, nil)
		return
	}
	base.SendResponse(ctx, c, errno.Success, utils.H{
		"posts":     posts,
		"total":     total,
		"page_num":  pageNum,
		"page_size": pageSize,
	})
}
