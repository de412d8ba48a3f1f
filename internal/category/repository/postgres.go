package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nordlane/catalog-service/internal/category"
	"github.com/nordlane/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (name, slug, type, parent_id, display_order, is_active, image_desktop, image_mobile, created_at, updated_at)
        VALUES (:name, :slug, :type, :parent_id, :display_order, :is_active, :image_desktop, :image_mobile, :created_at, :updated_at)
        RETURNING id
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, c)
	if err != nil {
		return mapConstraintError(err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&c.ID); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT * FROM categories ORDER BY display_order ASC, name ASC`
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            slug = :slug,
            parent_id = :parent_id,
            display_order = :display_order,
            is_active = :is_active,
            image_desktop = :image_desktop,
            image_mobile = :image_mobile,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return mapConstraintError(err)
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

// Sibling uniqueness treats NULL parent_id as its own group, so two root
// categories cannot share a slug either.
func (r *PGRepository) IsSlugUnique(ctx context.Context, parentID *int64, slug string, excludeID int64) (bool, error) {
	return r.isUniqueAmongSiblings(ctx, "slug", parentID, slug, excludeID)
}

func (r *PGRepository) IsNameUnique(ctx context.Context, parentID *int64, name string, excludeID int64) (bool, error) {
	return r.isUniqueAmongSiblings(ctx, "name", parentID, name, excludeID)
}

func (r *PGRepository) isUniqueAmongSiblings(ctx context.Context, column string, parentID *int64, value string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM categories WHERE ` + column + ` = $1 AND parent_id IS NOT DISTINCT FROM $2 AND id != $3`
	if err := r.DB.GetContext(ctx, &count, query, value, parentID, excludeID); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) HasChildren(ctx context.Context, id int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM categories WHERE parent_id = $1`
	if err := r.DB.GetContext(ctx, &count, query, id); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) CountProducts(ctx context.Context, slug string) (int, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE category = $1`
	if err := r.DB.GetContext(ctx, &count, query, slug); err != nil {
		return 0, err
	}
	return count, nil
}

// mapConstraintError converts a unique-constraint race (the application-level
// checks ran, but a concurrent writer won) into the same conflict errors the
// pre-write checks produce.
func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "slug") {
			return category.ErrSlugTaken
		}
		if strings.Contains(pqErr.Constraint, "name") {
			return category.ErrNameTaken
		}
	}
	return err
}
