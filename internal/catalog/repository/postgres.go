package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/nordlane/catalog-service/internal/catalog/dto"
	"github.com/nordlane/catalog-service/internal/catalog/query"
	"github.com/nordlane/catalog-service/internal/model"
)

var productColumns = []string{
	"id", "name", "brand", "gender", "category", "color", "price",
	"sizes", "images", "published_at", "created_at", "updated_at",
}

type PGRepository struct {
	DB *sqlx.DB

	// now is swappable so query construction is testable at fixed instants.
	now func() time.Time
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db, now: time.Now}
}

func cursorFrom(f *dto.ProductFilters) query.Cursor {
	return query.Cursor{
		Sort:      query.ParseSortField(f.Sort),
		Order:     query.ParseDirection(f.Order),
		LastID:    f.LastID,
		LastValue: f.LastValue,
	}
}

// scopePredicates covers gender/category/is-new plus the publish-date guard.
// Facet metadata queries use exactly this set.
func scopePredicates(f *dto.ProductFilters, now time.Time) []sq.Sqlizer {
	preds := query.Scope(f.Gender, f.Category, now)
	if f.NewOnly {
		preds = append(preds, query.NewOnly(now))
	}
	return preds
}

// filterPredicates is the full non-pagination filter set.
func filterPredicates(f *dto.ProductFilters, now time.Time) []sq.Sqlizer {
	preds := scopePredicates(f, now)
	preds = append(preds, query.Search(f.Query)...)
	preds = append(preds, query.SizeColor(f.Sizes, f.Colors)...)
	return preds
}

func (r *PGRepository) FindPage(ctx context.Context, f *dto.ProductFilters, limit int) ([]model.Product, error) {
	now := r.now()
	cursor := cursorFrom(f)

	preds := filterPredicates(f, now)
	pagination, err := cursor.Predicate()
	if err != nil {
		return nil, err
	}
	if pagination != nil {
		preds = append(preds, pagination)
	}

	builder := sq.Select(productColumns...).
		From("products").
		Where(sq.And(preds)).
		OrderBy(cursor.OrderBy()...).
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, sqlStr, args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Count(ctx context.Context, f *dto.ProductFilters) (int, error) {
	builder := sq.Select("count(*)").
		From("products").
		Where(sq.And(filterPredicates(f, r.now()))).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, sqlStr, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) FacetMetadata(ctx context.Context, f *dto.ProductFilters) (*dto.FilterMetadata, error) {
	now := r.now()

	colors, err := r.distinct(ctx, "color", f, now)
	if err != nil {
		return nil, err
	}
	// Size sets are unnested to individual labels before deduplication.
	sizes, err := r.distinct(ctx, "unnest(sizes)", f, now)
	if err != nil {
		return nil, err
	}
	categories, err := r.distinct(ctx, "category", f, now)
	if err != nil {
		return nil, err
	}

	return &dto.FilterMetadata{
		Colors:     colors,
		Sizes:      sizes,
		Categories: categories,
	}, nil
}

func (r *PGRepository) distinct(ctx context.Context, expr string, f *dto.ProductFilters, now time.Time) ([]string, error) {
	builder := sq.Select(expr).
		Distinct().
		From("products").
		Where(sq.And(scopePredicates(f, now))).
		OrderBy("1 ASC").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	values := []string{}
	if err := r.DB.SelectContext(ctx, &values, sqlStr, args...); err != nil {
		return nil, err
	}
	return values, nil
}
