package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/devlaunch/bootcamper/pkg/query"
)

func TestBuildFilter(t *testing.T) {
	filter := buildFilter([]query.Condition{
		{Field: "housing", Op: query.OpEq, Value: true},
		{Field: "averageCost", Op: query.OpLte, Value: int64(10000)},
		{Field: "careers", Op: query.OpIn, Value: []any{"Business", "UI/UX"}},
	})

	assert.Equal(t, bson.M{
		"housing":     true,
		"averageCost": bson.M{"$lte": int64(10000)},
		"careers":     bson.M{"$in": []any{"Business", "UI/UX"}},
	}, filter)
}

func TestBuildFilterMergesRangeOps(t *testing.T) {
	filter := buildFilter([]query.Condition{
		{Field: "tuition", Op: query.OpGte, Value: int64(1000)},
		{Field: "tuition", Op: query.OpLte, Value: int64(5000)},
	})

	assert.Equal(t, bson.M{
		"tuition": bson.M{"$gte": int64(1000), "$lte": int64(5000)},
	}, filter)
}

func TestBuildFindOptions(t *testing.T) {
	fo := buildFindOptions(query.Options{
		Select: []string{"name", "description"},
		Sort:   []query.SortField{{Field: "averageCost", Desc: true}, {Field: "name"}},
		Page:   3,
		Limit:  25,
	})

	require.NotNil(t, fo.Skip)
	assert.Equal(t, int64(50), *fo.Skip)
	require.NotNil(t, fo.Limit)
	assert.Equal(t, int64(25), *fo.Limit)
	assert.Equal(t, bson.M{"name": 1, "description": 1}, fo.Projection)
	assert.Equal(t, bson.D{
		{Key: "averageCost", Value: -1},
		{Key: "name", Value: 1},
	}, fo.Sort)
}
