package catalog

import (
	"context"

	"github.com/nordlane/catalog-service/internal/catalog/dto"
	"github.com/nordlane/catalog-service/internal/model"
)

type Repository interface {
	// FindPage returns up to limit rows matching the filters, ordered by the
	// filters' sort field with id as tie-break, resuming after the cursor.
	FindPage(ctx context.Context, f *dto.ProductFilters, limit int) ([]model.Product, error)
	// Count ignores the cursor so the total reflects the whole filtered set.
	Count(ctx context.Context, f *dto.ProductFilters) (int, error)
	// FacetMetadata ignores the cursor and the color/size selections.
	FacetMetadata(ctx context.Context, f *dto.ProductFilters) (*dto.FilterMetadata, error)
}
