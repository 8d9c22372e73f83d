package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlaunch/bootcamper/pkg/query"
)

// buildFilter converts the typed condition tree into a bson filter. Operators
// were already validated against the allow-list by the query parser.
func buildFilter(conds []query.Condition) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		switch c.Op {
		case query.OpEq:
			filter[c.Field] = c.Value
		case query.OpGt:
			filter[c.Field] = mergeOp(filter[c.Field], "$gt", c.Value)
		case query.OpGte:
			filter[c.Field] = mergeOp(filter[c.Field], "$gte", c.Value)
		case query.OpLt:
			filter[c.Field] = mergeOp(filter[c.Field], "$lt", c.Value)
		case query.OpLte:
			filter[c.Field] = mergeOp(filter[c.Field], "$lte", c.Value)
		case query.OpIn:
			filter[c.Field] = bson.M{"$in": c.Value}
		}
	}
	return filter
}

// mergeOp lets two range operators target the same field, e.g.
// tuition[gte]=1000&tuition[lte]=5000.
func mergeOp(existing any, op string, value any) bson.M {
	m, ok := existing.(bson.M)
	if !ok {
		m = bson.M{}
	}
	m[op] = value
	return m
}

// buildFindOptions converts projection, sort and pagination into driver options.
func buildFindOptions(opts query.Options) *options.FindOptions {
	fo := options.Find().SetSkip(opts.Skip()).SetLimit(int64(opts.Limit))

	if len(opts.Select) > 0 {
		proj := bson.M{}
		for _, f := range opts.Select {
			proj[f] = 1
		}
		fo.SetProjection(proj)
	}

	sort := bson.D{}
	for _, s := range opts.Sort {
		dir := 1
		if s.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: s.Field, Value: dir})
	}
	fo.SetSort(sort)

	return fo
}
