// internal/app/store/queries/reportqueries/transactionvolume.go
package reportqueries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// VolumeBucket is one period's worth of transaction volume.
type VolumeBucket struct {
	Period string               `bson:"_id"` // "2025", "2025-06", or "2025-06-15"
	Count  int64                `bson:"count"`
	Total  primitive.Decimal128 `bson:"total"`
}

// periodPrefixLen maps a grouping granularity to the prefix length of the
// stored timestamp layout (YYYY-MM-DDTHH:MM:SS).
var periodPrefixLen = map[string]int{
	"year":  4,
	"month": 7,
	"day":   10,
}

// TransactionVolumeByPeriod groups transactions of every status into year,
// month, or day buckets and sums their amounts. Buckets come back oldest
// first.
func TransactionVolumeByPeriod(ctx context.Context, db *mongo.Database, period string) ([]VolumeBucket, error) {
	n, ok := periodPrefixLen[period]
	if !ok {
		return nil, fmt.Errorf("unknown period %q: want year, month, or day", period)
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   bson.M{"$substrBytes": bson.A{"$date", 0, n}},
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$amount"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cur, err := db.Collection("transactions").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []VolumeBucket
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// TransactionStats holds aggregate statistics over a set of transactions.
type TransactionStats struct {
	Count   int64                `bson:"count"`
	Total   primitive.Decimal128 `bson:"total"`
	Average primitive.Decimal128 `bson:"average"`
	Max     primitive.Decimal128 `bson:"max"`
	Min     primitive.Decimal128 `bson:"min"`
}

// TransactionStatistics computes count, total, average, max, and min amount
// over the transactions matching filter. A nil filter covers everything.
func TransactionStatistics(ctx context.Context, db *mongo.Database, filter bson.M) (TransactionStats, error) {
	if filter == nil {
		filter = bson.M{}
	}

	pipeline := []bson.M{
		{"$match": filter},
		{"$group": bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"total":   bson.M{"$sum": "$amount"},
			"average": bson.M{"$avg": "$amount"},
			"max":     bson.M{"$max": "$amount"},
			"min":     bson.M{"$min": "$amount"},
		}},
	}

	cur, err := db.Collection("transactions").Aggregate(ctx, pipeline)
	if err != nil {
		return TransactionStats{}, err
	}
	defer cur.Close(ctx)

	var stats TransactionStats
	if cur.Next(ctx) {
		if err := cur.Decode(&stats); err != nil {
			return TransactionStats{}, err
		}
	}
	return stats, cur.Err()
}
