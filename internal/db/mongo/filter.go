package mongo

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

// matchNothing is used for field paths that would be read as query operators.
var matchNothing = bson.D{{Key: "_id", Value: bson.D{{Key: "$exists", Value: false}}}}

// buildFilter translates a predicate into a MongoDB query document.
func buildFilter(p filter.Predicate) bson.D {
	switch p.Op() {
	case filter.OpAll:
		return bson.D{}
	case filter.OpOr:
		arms := make(bson.A, 0, len(p.Any()))
		for _, sub := range p.Any() {
			arms = append(arms, buildFilter(sub))
		}
		return bson.D{{Key: "$or", Value: arms}}
	}

	if strings.HasPrefix(p.Field(), "$") {
		return matchNothing
	}

	switch p.Op() {
	case filter.OpEqual:
		return bson.D{{Key: p.Field(), Value: p.Value()}}
	case filter.OpPattern:
		return bson.D{{Key: p.Field(), Value: bson.D{
			{Key: "$regex", Value: primitive.Regex{Pattern: p.Pattern(), Options: "i"}},
		}}}
	case filter.OpEmpty:
		return bson.D{{Key: p.Field(), Value: bson.D{
			{Key: "$in", Value: bson.A{nil, ""}},
		}}}
	default:
		return matchNothing
	}
}
