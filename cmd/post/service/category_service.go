package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

func (service *PostService) CreateCategory(ctx context.Context, identity *security.Identity, name, description string) (*model.Category, error) {
	if !identity.IsAdmin() {
		return nil, errno.Forbidden
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 64 {
		return nil, errno.ParamErr.WithMessage("Category name must be between 1 and 64 characters")
	}
	category := &model.Category{Name: name, Description: strings.TrimSpace(description)}
	if err := service.posts.CreateCategory(ctx, category); err != nil {
		return nil, errors.WithMessage(err, "create category")
	}
	return category, nil
}

func (service *PostService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	list, err := service.posts.ListCategories(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "list categories")
	}
	return list, nil
}

func (service *PostService) DeleteCategory(ctx context.Context, identity *security.Identity, categoryId int64) error {
	if !identity.IsAdmin() {
		return errno.Forbidden
	}
	category, err := service.posts.GetCategory(ctx, categoryId)
	if err != nil {
		return errors.WithMessage(err, "load category")
	}
	if category == nil {
		return errno.CategoryNotFound
	}
	if err = service.posts.DeleteCategory(ctx, categoryId); err != nil {
		return errors.WithMessage(err, "delete category")
	}
	return nil
}

func (service *PostService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	list, err := service.posts.ListTags(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "list tags")
	}
	return list, nil
}
