package dto

import "github.com/nordlane/catalog-service/internal/model"

type CreateCategoryInput struct {
	Name         string
	Slug         string
	Type         model.CategoryType
	ParentID     *int64
	DisplayOrder int
	ImageDesktop string
	ImageMobile  string
}

// UpdateCategoryInput carries the full editable state; Type is fixed at
// creation time.
type UpdateCategoryInput struct {
	ID           int64
	Name         string
	Slug         string
	ParentID     *int64
	DisplayOrder int
	IsActive     bool
	ImageDesktop string
	ImageMobile  string
}
