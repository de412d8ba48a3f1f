package product

import (
	"context"
	"errors"

	"github.com/nordlane/catalog-service/internal/model"
	"github.com/nordlane/catalog-service/internal/product/dto"
)

var ErrNotFound = errors.New("product not found")

// UseCase covers the admin panel flows. Storefront reads go through the
// catalog package, which enforces publish-date visibility; these operations
// see unpublished products too.
type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
