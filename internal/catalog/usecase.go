package catalog

import (
	"context"

	"github.com/nordlane/catalog-service/internal/catalog/dto"
)

const (
	DefaultLimit = 24
	MaxLimit     = 100
)

type UseCase interface {
	// GetProducts never fails: storage or cursor errors degrade to an empty
	// page so the listing always renders.
	GetProducts(ctx context.Context, params *dto.ListParams) *dto.ProductPage
}
