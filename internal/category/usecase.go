package category

import (
	"context"

	"github.com/nordlane/catalog-service/internal/category/dto"
	"github.com/nordlane/catalog-service/internal/model"
)

type UseCase interface {
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListTree(ctx context.Context) ([]*model.CategoryNode, error)
	// Navigation returns the cached nav links for active categories.
	Navigation(ctx context.Context) ([]model.NavLink, error)
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
