package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/catalog"
	"github.com/nordlane/catalog-service/internal/catalog/dto"
	"github.com/nordlane/catalog-service/internal/model"
)

type catalogUseCase struct {
	repo   catalog.Repository
	logger *zap.Logger
}

func NewCatalogUseCase(repo catalog.Repository, logger *zap.Logger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		logger: logger,
	}
}

// GetProducts assembles a result page: fetch limit+1 rows to detect a next
// page, then optionally a total count and facet metadata. The count and
// metadata queries have no ordering dependency and run concurrently. Any
// failure degrades to an empty page rather than surfacing an error.
func (uc *catalogUseCase) GetProducts(ctx context.Context, params *dto.ListParams) *dto.ProductPage {
	limit := params.Limit
	if limit <= 0 {
		limit = catalog.DefaultLimit
	}
	if limit > catalog.MaxLimit {
		limit = catalog.MaxLimit
	}

	rows, err := uc.repo.FindPage(ctx, &params.ProductFilters, limit+1)
	if err != nil {
		uc.logger.Error("product page fetch failed", zap.Error(err))
		return emptyPage(params)
	}

	hasMore := false
	if len(rows) > limit {
		hasMore = true
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []model.Product{}
	}

	page := &dto.ProductPage{Products: rows, HasMore: hasMore}

	var wg sync.WaitGroup
	var countErr, metaErr error

	if params.IncludeCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			total, err := uc.repo.Count(ctx, &params.ProductFilters)
			if err != nil {
				countErr = err
				return
			}
			page.TotalCount = &total
		}()
	}

	if params.IncludeMetadata {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metadata, err := uc.repo.FacetMetadata(ctx, &params.ProductFilters)
			if err != nil {
				metaErr = err
				return
			}
			page.Metadata = metadata
		}()
	}

	wg.Wait()

	if countErr != nil {
		uc.logger.Error("product count failed", zap.Error(countErr))
		return emptyPage(params)
	}
	if metaErr != nil {
		uc.logger.Error("facet metadata failed", zap.Error(metaErr))
		return emptyPage(params)
	}

	return page
}

func emptyPage(params *dto.ListParams) *dto.ProductPage {
	page := &dto.ProductPage{Products: []model.Product{}}
	if params.IncludeCount {
		zero := 0
		page.TotalCount = &zero
	}
	if params.IncludeMetadata {
		page.Metadata = &dto.FilterMetadata{
			Colors:     []string{},
			Sizes:      []string{},
			Categories: []string{},
		}
	}
	return page
}
