package dto

import "github.com/nordlane/catalog-service/internal/model"

type ProductFilters struct {
	Query    string
	Gender   string
	Category string
	Colors   []string
	Sizes    []string
	NewOnly  bool

	Sort      string // id, price, created_at... whitelisted to id, price, name
	Order     string // asc, desc
	LastID    string // empty means page one
	LastValue string // sort field value on the last row of the previous page
}

type ListParams struct {
	ProductFilters
	Limit           int
	IncludeCount    bool
	IncludeMetadata bool
}

// FilterMetadata lists the distinct facet values reachable from the current
// gender/category/is-new scope, independent of chosen colors and sizes.
type FilterMetadata struct {
	Colors     []string `json:"colors"`
	Sizes      []string `json:"sizes"`
	Categories []string `json:"categories"`
}

type ProductPage struct {
	Products   []model.Product `json:"products"`
	HasMore    bool            `json:"has_more"`
	TotalCount *int            `json:"total_count,omitempty"`
	Metadata   *FilterMetadata `json:"metadata,omitempty"`
}
