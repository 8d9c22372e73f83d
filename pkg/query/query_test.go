package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(url.Values{})
	require.NoError(t, err)

	assert.Empty(t, opts.Conditions)
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
	require.Len(t, opts.Sort, 1)
	assert.Equal(t, SortField{Field: DefaultSortField, Desc: true}, opts.Sort[0])
}

func TestParseOperators(t *testing.T) {
	v := url.Values{}
	v.Set("averageCost[lte]", "10000")
	v.Set("careers[in]", "Business,Web Development")
	v.Set("housing", "true")

	opts, err := Parse(v)
	require.NoError(t, err)
	require.Len(t, opts.Conditions, 3)

	byField := map[string]Condition{}
	for _, c := range opts.Conditions {
		byField[c.Field] = c
	}

	assert.Equal(t, Condition{Field: "averageCost", Op: OpLte, Value: int64(10000)}, byField["averageCost"])
	// equality on a coercible value matches either stored representation
	assert.Equal(t, Condition{Field: "housing", Op: OpIn, Value: []any{true, "true"}}, byField["housing"])
	assert.Equal(t, OpIn, byField["careers"].Op)
	assert.Equal(t, []any{"Business", "Web Development"}, byField["careers"].Value)
}

func TestParseEqualityKeepsLiteralForm(t *testing.T) {
	// leading-zero values parse as integers but are stored as strings;
	// the filter must accept both forms or the match silently fails
	v := url.Values{}
	v.Set("location.zipcode", "02118")

	opts, err := Parse(v)
	require.NoError(t, err)
	require.Len(t, opts.Conditions, 1)

	c := opts.Conditions[0]
	assert.Equal(t, "location.zipcode", c.Field)
	assert.Equal(t, OpIn, c.Op)
	assert.Equal(t, []any{int64(2118), "02118"}, c.Value)
}

func TestParseInListKeepsLiteralForms(t *testing.T) {
	v := url.Values{}
	v.Set("location.zipcode[in]", "02118,01854")

	opts, err := Parse(v)
	require.NoError(t, err)
	require.Len(t, opts.Conditions, 1)
	assert.Equal(t, []any{int64(2118), "02118", int64(1854), "01854"}, opts.Conditions[0].Value)
}

func TestParseValueCoercion(t *testing.T) {
	v := url.Values{}
	v.Set("tuition[gt]", "99.5")
	v.Set("name", "Devworks")

	opts, err := Parse(v)
	require.NoError(t, err)

	byField := map[string]any{}
	for _, c := range opts.Conditions {
		byField[c.Field] = c.Value
	}
	assert.Equal(t, 99.5, byField["tuition"])
	assert.Equal(t, "Devworks", byField["name"])
}

func TestParseRejectsUnknownOperator(t *testing.T) {
	v := url.Values{}
	v.Set("averageCost[regex]", "x")

	_, err := Parse(v)
	require.Error(t, err)
	var bad *ErrBadQuery
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "averageCost[regex]", bad.Key)
}

func TestParseRejectsMalformedField(t *testing.T) {
	for _, key := range []string{"$where", "a b", "1field", "x[gt"} {
		v := url.Values{}
		v.Set(key, "1")
		_, err := Parse(v)
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestParseSelectAndSort(t *testing.T) {
	v := url.Values{}
	v.Set("select", "name,description")
	v.Set("sort", "-averageCost,name")

	opts, err := Parse(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "description"}, opts.Select)
	assert.Equal(t, []SortField{
		{Field: "averageCost", Desc: true},
		{Field: "name"},
	}, opts.Sort)
	assert.Empty(t, opts.Conditions, "reserved keys must not become filters")
}

func TestParsePageLimitFallback(t *testing.T) {
	v := url.Values{}
	v.Set("page", "abc")
	v.Set("limit", "-5")

	opts, err := Parse(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)

	v.Set("page", "3")
	v.Set("limit", "25")
	opts, err = Parse(v)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, int64(50), opts.Skip())
}

func TestPaginate(t *testing.T) {
	// middle page has both neighbors
	pg := Paginate(2, 10, 35)
	require.NotNil(t, pg.Next)
	require.NotNil(t, pg.Prev)
	assert.Equal(t, &PageRef{Page: 3, Limit: 10}, pg.Next)
	assert.Equal(t, &PageRef{Page: 1, Limit: 10}, pg.Prev)

	// first page of a small set has neither
	pg = Paginate(1, 10, 10)
	assert.Nil(t, pg.Next)
	assert.Nil(t, pg.Prev)

	// exact boundary: skip+limit == total means no next
	pg = Paginate(2, 10, 20)
	assert.Nil(t, pg.Next)
	require.NotNil(t, pg.Prev)
}
