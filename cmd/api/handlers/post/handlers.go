package handlers

import (
	"strings"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/post/service"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/utils"
)

type PostParam struct {
	Title      string  `form:"title" json:"title"`
	Content    string  `form:"content" json:"content"`
	CategoryId string  `form:"category_id" json:"category_id"`
	Tags       *string `form:"tags" json:"tags"`
	Status     string  `form:"status" json:"status"`
}

// request converts the form into a service request. Tags come comma
// separated; a missing tags field leaves them nil.
func (p *PostParam) request() (*service.PostRequest, error) {
	categoryId, err := utils.ParseOptionalID(p.CategoryId)
	if err != nil {
		return nil, errno.CategoryNotFound
	}
	req := &service.PostRequest{
		Title:      p.Title,
		Content:    p.Content,
		CategoryId: categoryId,
		Status:     model.PostStatus(p.Status),
	}
	if p.Tags != nil {
		req.Tags = make([]string, 0)
		for _, tag := range strings.Split(*p.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}
	return req, nil
}

type ListPostParam struct {
	CategoryId int64  `query:"category_id"`
	UserId     int64  `query:"user_id"`
	Tag        string `query:"tag"`
}

type StatusParam struct {
	Status string `form:"status" json:"status"`
}

type PolicyParam struct {
	Policy string `form:"policy" json:"policy"`
}

type CategoryParam struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}
