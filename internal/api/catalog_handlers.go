package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/catalog"
	"github.com/nordlane/catalog-service/internal/catalog/dto"
)

type CatalogHandlers struct {
	uc     catalog.UseCase
	logger *zap.Logger
}

func NewCatalogHandlers(uc catalog.UseCase, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{uc: uc, logger: logger}
}

// GetProducts serves the storefront listing. The usecase degrades failures
// to an empty page, so this always answers 200.
func (h *CatalogHandlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r.URL.Query())
	page := h.uc.GetProducts(r.Context(), params)
	respondJSON(w, http.StatusOK, page)
}

func parseListParams(values url.Values) *dto.ListParams {
	params := &dto.ListParams{
		ProductFilters: dto.ProductFilters{
			Query:     values.Get("q"),
			Gender:    values.Get("gender"),
			Category:  values.Get("category"),
			Colors:    splitCSV(values.Get("color")),
			Sizes:     splitCSV(values.Get("sizes")),
			NewOnly:   values.Get("new") == "true",
			Sort:      values.Get("sort"),
			Order:     values.Get("order"),
			LastID:    values.Get("last_id"),
			LastValue: values.Get("last_value"),
		},
		IncludeCount:    values.Get("count") == "true",
		IncludeMetadata: values.Get("metadata") == "true",
		Limit:           catalog.DefaultLimit,
	}

	if raw := values.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			if limit > catalog.MaxLimit {
				limit = catalog.MaxLimit
			}
			params.Limit = limit
		}
	}
	return params
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
