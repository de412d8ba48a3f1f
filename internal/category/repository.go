package category

import (
	"context"

	"github.com/nordlane/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	// FindAll returns the flat set ordered by display_order, name.
	FindAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error

	IsSlugUnique(ctx context.Context, parentID *int64, slug string, excludeID int64) (bool, error)
	IsNameUnique(ctx context.Context, parentID *int64, name string, excludeID int64) (bool, error)
	HasChildren(ctx context.Context, id int64) (bool, error)
	CountProducts(ctx context.Context, slug string) (int, error)
}
