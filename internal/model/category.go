package model

import "time"

type CategoryType string

const (
	TypeMainCategory CategoryType = "MAIN-CATEGORY"
	TypeSubCategory  CategoryType = "SUB-CATEGORY"
	TypeContainer    CategoryType = "CONTAINER"
	TypeCollection   CategoryType = "COLLECTION"
)

type Category struct {
	ID           int64        `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Slug         string       `db:"slug" json:"slug"`
	Type         CategoryType `db:"type" json:"type"`
	ParentID     *int64       `db:"parent_id" json:"parent_id"` // Nullable
	DisplayOrder int          `db:"display_order" json:"display_order"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	ImageDesktop *string      `db:"image_desktop" json:"image_desktop"`
	ImageMobile  *string      `db:"image_mobile" json:"image_mobile"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// CategoryNode is the in-memory tree view of a category. Children is nil for
// leaves; HasChildren and len(Children) > 0 are interchangeable.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children,omitempty"`
}

func (n *CategoryNode) HasChildren() bool {
	return len(n.Children) > 0
}

// NavLink is the presentation-facing shape of a category tree node. Href is
// built from ancestor slugs; CONTAINER levels contribute no segment.
type NavLink struct {
	Title        string    `json:"title"`
	Href         string    `json:"href"`
	DisplayOrder int       `json:"display_order"`
	IsFolder     bool      `json:"is_folder"`
	Children     []NavLink `json:"children,omitempty"`
}
