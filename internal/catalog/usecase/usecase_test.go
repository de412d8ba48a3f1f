package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/catalog/dto"
	"github.com/nordlane/catalog-service/internal/model"
)

// fakeRepo applies the filter and cursor semantics in memory so page walks
// can be exercised without a database.
type fakeRepo struct {
	products  []model.Product
	failFind  bool
	failCount bool
	failMeta  bool
}

func (f *fakeRepo) FindPage(_ context.Context, flt *dto.ProductFilters, limit int) ([]model.Product, error) {
	if f.failFind {
		return nil, errors.New("storage down")
	}
	rows := f.match(flt)
	sortRows(rows, flt.Sort, flt.Order)
	rows = afterCursor(rows, flt)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeRepo) Count(_ context.Context, flt *dto.ProductFilters) (int, error) {
	if f.failCount {
		return 0, errors.New("count down")
	}
	return len(f.match(flt)), nil
}

func (f *fakeRepo) FacetMetadata(_ context.Context, flt *dto.ProductFilters) (*dto.FilterMetadata, error) {
	if f.failMeta {
		return nil, errors.New("metadata down")
	}
	colors := map[string]bool{}
	for _, p := range f.match(&dto.ProductFilters{Gender: flt.Gender, Category: flt.Category}) {
		colors[p.Color] = true
	}
	out := make([]string, 0, len(colors))
	for c := range colors {
		out = append(out, c)
	}
	sort.Strings(out)
	return &dto.FilterMetadata{Colors: out, Sizes: []string{}, Categories: []string{}}, nil
}

func (f *fakeRepo) match(flt *dto.ProductFilters) []model.Product {
	var rows []model.Product
	for _, p := range f.products {
		if flt.Gender != "" && p.Gender != flt.Gender {
			continue
		}
		if flt.Category != "" && p.Category != flt.Category {
			continue
		}
		rows = append(rows, p)
	}
	return rows
}

func sortRows(rows []model.Product, sortField, order string) {
	desc := order == "desc"
	sort.SliceStable(rows, func(i, j int) bool {
		less, eq := compareField(rows[i], rows[j], sortField)
		if !eq {
			if desc {
				return !less
			}
			return less
		}
		if desc {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].ID < rows[j].ID
	})
}

func compareField(a, b model.Product, field string) (less, eq bool) {
	switch field {
	case "price":
		c := a.Price.Cmp(b.Price)
		return c < 0, c == 0
	case "name":
		return a.Name < b.Name, a.Name == b.Name
	default:
		return a.ID < b.ID, a.ID == b.ID
	}
}

func afterCursor(rows []model.Product, flt *dto.ProductFilters) []model.Product {
	if flt.LastID == "" {
		return rows
	}
	out := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		if isAfterCursor(row, flt) {
			out = append(out, row)
		}
	}
	return out
}

func isAfterCursor(row model.Product, flt *dto.ProductFilters) bool {
	desc := flt.Order == "desc"
	var cmp int
	switch flt.Sort {
	case "price":
		last, err := decimal.NewFromString(flt.LastValue)
		if err != nil {
			return false
		}
		cmp = row.Price.Cmp(last)
	case "name":
		cmp = strings.Compare(row.Name, flt.LastValue)
	default:
		cmp = strings.Compare(row.ID, flt.LastID)
		if desc {
			return cmp < 0
		}
		return cmp > 0
	}
	if cmp == 0 {
		if desc {
			return row.ID < flt.LastID
		}
		return row.ID > flt.LastID
	}
	if desc {
		return cmp < 0
	}
	return cmp > 0
}

func prod(id, name, gender, price string) model.Product {
	return model.Product{
		ID:     id,
		Name:   name,
		Gender: gender,
		Color:  "black",
		Price:  decimal.RequireFromString(price),
	}
}

func cursorAfter(page *dto.ProductPage, params *dto.ListParams) {
	last := page.Products[len(page.Products)-1]
	params.LastID = last.ID
	switch params.Sort {
	case "price":
		params.LastValue = last.Price.String()
	case "name":
		params.LastValue = last.Name
	default:
		params.LastValue = ""
	}
}

// Duplicate prices must not repeat or drop rows
// across the page boundary.
func TestGetProductsPriceTieBreak(t *testing.T) {
	repo := &fakeRepo{products: []model.Product{
		prod("a", "A", "men", "100"),
		prod("b", "B", "men", "100"),
		prod("c", "C", "men", "200"),
	}}
	uc := NewCatalogUseCase(repo, zap.NewNop())

	params := &dto.ListParams{Limit: 2}
	params.Sort = "price"
	params.Order = "asc"

	page := uc.GetProducts(context.Background(), params)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "a", page.Products[0].ID)
	assert.Equal(t, "b", page.Products[1].ID)
	assert.True(t, page.HasMore)

	cursorAfter(page, params)
	assert.Equal(t, "b", params.LastID)
	assert.Equal(t, "100", params.LastValue)

	page = uc.GetProducts(context.Background(), params)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "c", page.Products[0].ID)
	assert.False(t, page.HasMore)
}

// Walking every page must yield each matching row exactly once, in order,
// no matter how many rows share a sort value.
func TestPaginationCompleteness(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 23; i++ {
		id := fmt.Sprintf("p%02d", i)
		price := fmt.Sprintf("%d", 100+(i%3)*50) // many duplicates
		repo.products = append(repo.products, prod(id, "P"+id, "women", price))
	}
	uc := NewCatalogUseCase(repo, zap.NewNop())

	for _, order := range []string{"asc", "desc"} {
		params := &dto.ListParams{Limit: 4}
		params.Gender = "women"
		params.Sort = "price"
		params.Order = order

		seen := map[string]int{}
		var collected []model.Product
		for pages := 0; ; pages++ {
			require.Less(t, pages, 20, "page walk did not terminate")
			page := uc.GetProducts(context.Background(), params)
			for _, p := range page.Products {
				seen[p.ID]++
				collected = append(collected, p)
			}
			if !page.HasMore {
				break
			}
			cursorAfter(page, params)
		}

		require.Len(t, seen, 23, "order=%s", order)
		for id, count := range seen {
			assert.Equal(t, 1, count, "product %s seen %d times (order=%s)", id, count, order)
		}

		expected := repo.match(&params.ProductFilters)
		sortRows(expected, params.Sort, params.Order)
		assert.Equal(t, expected, collected, "order=%s", order)
	}
}

func TestGetProductsIdempotent(t *testing.T) {
	repo := &fakeRepo{products: []model.Product{
		prod("a", "A", "men", "100"),
		prod("b", "B", "men", "150"),
	}}
	uc := NewCatalogUseCase(repo, zap.NewNop())

	params := &dto.ListParams{Limit: 10, IncludeCount: true, IncludeMetadata: true}
	first := uc.GetProducts(context.Background(), params)
	second := uc.GetProducts(context.Background(), params)
	assert.Equal(t, first, second)
}

func TestGetProductsCountAndMetadata(t *testing.T) {
	repo := &fakeRepo{products: []model.Product{
		prod("a", "A", "men", "100"),
		prod("b", "B", "men", "100"),
		prod("c", "C", "women", "200"),
	}}
	uc := NewCatalogUseCase(repo, zap.NewNop())

	params := &dto.ListParams{Limit: 1, IncludeCount: true, IncludeMetadata: true}
	params.Gender = "men"

	page := uc.GetProducts(context.Background(), params)
	require.Len(t, page.Products, 1)
	assert.True(t, page.HasMore)
	// Total reflects the whole filtered set, not the current page.
	require.NotNil(t, page.TotalCount)
	assert.Equal(t, 2, *page.TotalCount)
	require.NotNil(t, page.Metadata)
	assert.Equal(t, []string{"black"}, page.Metadata.Colors)
}

func TestGetProductsDegradesToEmptyPage(t *testing.T) {
	uc := NewCatalogUseCase(&fakeRepo{failFind: true}, zap.NewNop())

	params := &dto.ListParams{Limit: 5, IncludeCount: true, IncludeMetadata: true}
	page := uc.GetProducts(context.Background(), params)

	require.NotNil(t, page)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
	assert.False(t, page.HasMore)
	require.NotNil(t, page.TotalCount)
	assert.Equal(t, 0, *page.TotalCount)
	require.NotNil(t, page.Metadata)
	assert.Empty(t, page.Metadata.Colors)
}

func TestGetProductsDegradesWhenCountFails(t *testing.T) {
	repo := &fakeRepo{products: []model.Product{prod("a", "A", "men", "100")}, failCount: true}
	uc := NewCatalogUseCase(repo, zap.NewNop())

	page := uc.GetProducts(context.Background(), &dto.ListParams{Limit: 5, IncludeCount: true})
	assert.Empty(t, page.Products)
	assert.False(t, page.HasMore)
}

func TestGetProductsDefaultsLimit(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 30; i++ {
		repo.products = append(repo.products, prod(fmt.Sprintf("p%02d", i), "P", "men", "100"))
	}
	uc := NewCatalogUseCase(repo, zap.NewNop())

	page := uc.GetProducts(context.Background(), &dto.ListParams{})
	assert.Len(t, page.Products, 24)
	assert.True(t, page.HasMore)
}
