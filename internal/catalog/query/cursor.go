package query

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// Cursor marks the last row of the previously fetched page. A zero cursor
// (empty LastID) means page one. LastValue holds the sort field's value on
// that row and is coerced per sort field before it reaches the comparison,
// so a price cursor compares as a decimal and never as its string form.
type Cursor struct {
	Sort      SortField
	Order     Direction
	LastID    string
	LastValue string
}

func (c Cursor) Zero() bool {
	return c.LastID == ""
}

// Predicate returns the pagination condition, or nil for page one.
//
// Sorting by id needs only the id comparison: ids are unique and totally
// ordered. Any other sort field can carry duplicates, so the predicate is
// (field > lastValue) OR (field = lastValue AND id > lastId), with both
// comparisons mirrored for descending order. The id leg must use the same
// direction as the secondary ORDER BY key or rows get skipped or repeated
// at page boundaries.
func (c Cursor) Predicate() (sq.Sqlizer, error) {
	if c.Zero() {
		return nil, nil
	}
	if c.Sort == SortID || c.LastValue == "" {
		if c.Order == Desc {
			return sq.Lt{"id": c.LastID}, nil
		}
		return sq.Gt{"id": c.LastID}, nil
	}

	value, err := c.coerce()
	if err != nil {
		return nil, err
	}
	column := string(c.Sort)
	if c.Order == Desc {
		return sq.Or{
			sq.Lt{column: value},
			sq.And{sq.Eq{column: value}, sq.Lt{"id": c.LastID}},
		}, nil
	}
	return sq.Or{
		sq.Gt{column: value},
		sq.And{sq.Eq{column: value}, sq.Gt{"id": c.LastID}},
	}, nil
}

func (c Cursor) coerce() (interface{}, error) {
	switch c.Sort {
	case SortPrice:
		d, err := decimal.NewFromString(c.LastValue)
		if err != nil {
			return nil, fmt.Errorf("cursor value %q is not a valid price: %w", c.LastValue, err)
		}
		return d, nil
	case SortName:
		return c.LastValue, nil
	default:
		return nil, fmt.Errorf("sort field %q does not take a cursor value", c.Sort)
	}
}

// OrderBy returns the two-part ordering clause: the sort field in the
// requested direction, then id in the same direction as tie-break. The id
// key here must pair with the id leg of Predicate.
func (c Cursor) OrderBy() []string {
	dir := "ASC"
	if c.Order == Desc {
		dir = "DESC"
	}
	if c.Sort == SortID {
		return []string{"id " + dir}
	}
	return []string{string(c.Sort) + " " + dir, "id " + dir}
}
