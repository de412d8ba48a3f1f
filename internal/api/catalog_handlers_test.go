package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nordlane/catalog-service/internal/catalog"
)

func TestParseListParams(t *testing.T) {
	values, err := url.ParseQuery("q=hoodie&gender=men&category=hoodies&color=black,white&sizes=S,M&new=true&sort=price&order=desc&last_id=abc&last_value=499.00&count=true&metadata=true&limit=12")
	assert.NoError(t, err)

	params := parseListParams(values)
	assert.Equal(t, "hoodie", params.Query)
	assert.Equal(t, "men", params.Gender)
	assert.Equal(t, "hoodies", params.Category)
	assert.Equal(t, []string{"black", "white"}, params.Colors)
	assert.Equal(t, []string{"S", "M"}, params.Sizes)
	assert.True(t, params.NewOnly)
	assert.Equal(t, "price", params.Sort)
	assert.Equal(t, "desc", params.Order)
	assert.Equal(t, "abc", params.LastID)
	assert.Equal(t, "499.00", params.LastValue)
	assert.True(t, params.IncludeCount)
	assert.True(t, params.IncludeMetadata)
	assert.Equal(t, 12, params.Limit)
}

func TestParseListParamsDefaults(t *testing.T) {
	params := parseListParams(url.Values{})
	assert.Equal(t, catalog.DefaultLimit, params.Limit)
	assert.Nil(t, params.Colors)
	assert.Nil(t, params.Sizes)
	assert.False(t, params.NewOnly)
	assert.False(t, params.IncludeCount)
}

func TestParseListParamsClampsLimit(t *testing.T) {
	params := parseListParams(url.Values{"limit": {"5000"}})
	assert.Equal(t, catalog.MaxLimit, params.Limit)

	params = parseListParams(url.Values{"limit": {"-3"}})
	assert.Equal(t, catalog.DefaultLimit, params.Limit)

	params = parseListParams(url.Values{"limit": {"nope"}})
	assert.Equal(t, catalog.DefaultLimit, params.Limit)
}

func TestSplitCSVDropsEmptyParts(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a, ,b,"))
	assert.Nil(t, splitCSV(""))
	assert.Nil(t, splitCSV(" , "))
}
