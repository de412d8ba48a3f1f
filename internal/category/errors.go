package category

import "errors"

// Expected, user-triggerable conditions. Handlers map these to field-level
// validation responses instead of generic failures.
var (
	ErrNotFound       = errors.New("category not found")
	ErrParentNotFound = errors.New("parent category not found")
	ErrParentRequired = errors.New("this category type requires a parent")
	ErrRootOnly       = errors.New("main categories must be top-level")
	ErrSlugTaken      = errors.New("slug is already used by a sibling category")
	ErrNameTaken      = errors.New("name is already used by a sibling category")
	ErrCycle          = errors.New("category cannot be moved under its own descendant")
	ErrImmutable      = errors.New("collection categories are system managed")
	ErrHasChildren    = errors.New("category still has child categories")
	ErrInUse          = errors.New("category is still referenced by products")
)
