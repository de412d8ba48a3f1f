package query

import (
	"regexp"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// NewProductDays is the trailing window within which a product counts as new.
const NewProductDays = 14

var searchStrip = regexp.MustCompile(`[^A-Za-z0-9 ÅÄÖåäö]+`)

// Search sanitizes a free-text query and returns a single OR predicate over
// name, category, gender and brand, or nothing if the sanitized term is empty.
func Search(term string) []sq.Sqlizer {
	term = strings.TrimSpace(searchStrip.ReplaceAllString(term, ""))
	if term == "" {
		return nil
	}
	pattern := "%" + term + "%"
	return []sq.Sqlizer{sq.Or{
		sq.ILike{"name": pattern},
		sq.ILike{"category": pattern},
		sq.ILike{"gender": pattern},
		sq.ILike{"brand": pattern},
	}}
}

// Scope restricts to the storefront-visible set: published on or before now,
// plus optional gender and category equality.
func Scope(gender, category string, now time.Time) []sq.Sqlizer {
	preds := []sq.Sqlizer{sq.LtOrEq{"published_at": now}}
	if gender != "" {
		preds = append(preds, sq.Eq{"gender": gender})
	}
	if category != "" {
		preds = append(preds, sq.Eq{"category": category})
	}
	return preds
}

// NewOnly restricts to products published within the NewProductDays window.
func NewOnly(now time.Time) sq.Sqlizer {
	return sq.GtOrEq{"published_at": now.AddDate(0, 0, -NewProductDays)}
}

// SizeColor builds the facet predicates. Sizes are set-containment checks
// against the sizes array (a product carries many sizes), colors are exact
// matches. Each facet is an OR group; the two groups AND together.
func SizeColor(sizes, colors []string) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if len(sizes) > 0 {
		group := make(sq.Or, 0, len(sizes))
		for _, size := range sizes {
			group = append(group, sq.Expr("? = ANY(sizes)", size))
		}
		preds = append(preds, group)
	}
	if len(colors) > 0 {
		group := make(sq.Or, 0, len(colors))
		for _, color := range colors {
			group = append(group, sq.Eq{"color": color})
		}
		preds = append(preds, group)
	}
	return preds
}
