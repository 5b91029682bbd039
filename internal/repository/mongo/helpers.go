package mongo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// exactNameMatch builds a case-insensitive exact-match regex for duplicate
// checks, e.g. "Bankdrücken" matches "BANKDRÜCKEN".
func exactNameMatch(name string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
}

// substringMatch builds a case-insensitive substring regex for free-text
// search filters.
func substringMatch(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// groupCounts runs a $group count over a single field and returns the
// distribution. Documents with an empty value for the field are skipped, so
// absent keys are omitted rather than reported as zero.
func groupCounts(ctx context.Context, collection *mongo.Collection, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		if row.Key == "" {
			continue
		}
		counts[row.Key] = row.Count
	}
	return counts, nil
}
