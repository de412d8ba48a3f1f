package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordlane/catalog-service/internal/catalog/dto"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	repo := NewPGRepository(sqlx.NewDb(mockDB, "sqlmock"))
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

var selectColumns = []string{
	"id", "name", "brand", "gender", "category", "color", "price",
	"sizes", "images", "published_at", "created_at", "updated_at",
}

func productRow(rows *sqlmock.Rows, id, name, price string) *sqlmock.Rows {
	return rows.AddRow(id, name, "nordlane", "men", "hoodies", "black", price,
		"{S,M}", "{https://img/1.jpg}", fixedNow, fixedNow, fixedNow)
}

func TestFindPagePassesLimitThrough(t *testing.T) {
	repo, mock := newMockRepo(t)

	expected := `SELECT id, name, brand, gender, category, color, price, sizes, images, published_at, created_at, updated_at FROM products WHERE (published_at <= $1) ORDER BY id ASC LIMIT 25`
	rows := sqlmock.NewRows(selectColumns)
	productRow(rows, "a", "Hoodie", "499.00")
	mock.ExpectQuery(regexp.QuoteMeta(expected)).
		WithArgs(fixedNow).
		WillReturnRows(rows)

	products, err := repo.FindPage(context.Background(), &dto.ProductFilters{}, 25)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, []string{"S", "M"}, []string(products[0].Sizes))
	assert.Equal(t, "499", products[0].Price.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPageWithCursorAndFacets(t *testing.T) {
	repo, mock := newMockRepo(t)

	expected := `SELECT id, name, brand, gender, category, color, price, sizes, images, published_at, created_at, updated_at FROM products WHERE (published_at <= $1 AND gender = $2 AND (color = $3) AND (price > $4 OR (price = $5 AND id > $6))) ORDER BY price ASC, id ASC LIMIT 3`
	mock.ExpectQuery(regexp.QuoteMeta(expected)).
		WillReturnRows(sqlmock.NewRows(selectColumns))

	filters := &dto.ProductFilters{
		Gender:    "men",
		Colors:    []string{"black"},
		Sort:      "price",
		Order:     "asc",
		LastID:    "b",
		LastValue: "100",
	}
	products, err := repo.FindPage(context.Background(), filters, 3)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPageRejectsMalformedCursor(t *testing.T) {
	repo, _ := newMockRepo(t)

	filters := &dto.ProductFilters{Sort: "price", LastID: "b", LastValue: "garbage"}
	_, err := repo.FindPage(context.Background(), filters, 3)
	assert.Error(t, err)
}

func TestCountIgnoresCursor(t *testing.T) {
	repo, mock := newMockRepo(t)

	expected := `SELECT count(*) FROM products WHERE (published_at <= $1)`
	mock.ExpectQuery(regexp.QuoteMeta(expected)).
		WithArgs(fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background(), &dto.ProductFilters{LastID: "b", LastValue: "100", Sort: "price"})
	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacetMetadataUnnestsSizes(t *testing.T) {
	repo, mock := newMockRepo(t)

	colorQuery := `SELECT DISTINCT color FROM products WHERE (published_at <= $1 AND gender = $2) ORDER BY 1 ASC`
	mock.ExpectQuery(regexp.QuoteMeta(colorQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"color"}).AddRow("black").AddRow("white"))

	sizeQuery := `SELECT DISTINCT unnest(sizes) FROM products WHERE (published_at <= $1 AND gender = $2) ORDER BY 1 ASC`
	mock.ExpectQuery(regexp.QuoteMeta(sizeQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"unnest"}).AddRow("M").AddRow("S"))

	categoryQuery := `SELECT DISTINCT category FROM products WHERE (published_at <= $1 AND gender = $2) ORDER BY 1 ASC`
	mock.ExpectQuery(regexp.QuoteMeta(categoryQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("hoodies"))

	// Color/size selections must not narrow the facet scope.
	filters := &dto.ProductFilters{Gender: "men", Colors: []string{"black"}, Sizes: []string{"S"}}
	metadata, err := repo.FacetMetadata(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, []string{"black", "white"}, metadata.Colors)
	assert.Equal(t, []string{"M", "S"}, metadata.Sizes)
	assert.Equal(t, []string{"hoodies"}, metadata.Categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}
