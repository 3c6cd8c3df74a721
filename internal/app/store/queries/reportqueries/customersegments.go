// internal/app/store/queries/reportqueries/customersegments.go
package reportqueries

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Segment floors on a customer's combined account balance.
var (
	premiumFloor  = decimal.NewFromInt(10000)
	standardFloor = decimal.NewFromInt(1000)
)

// CustomerSegment is one customer's classification by combined balance.
type CustomerSegment struct {
	UserID       string
	TotalBalance primitive.Decimal128
	Segment      string // premium | standard | basic
}

// SegmentCustomers classifies every customer-role user by the combined
// balance of all their accounts, richest first. A customer with no accounts
// classifies as basic. The totals come from one aggregation pass; the
// labels are assigned here so the floors stay in code rather than in a
// pipeline.
func SegmentCustomers(ctx context.Context, db *mongo.Database) ([]CustomerSegment, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"role": "customer"}},
		{"$lookup": bson.M{
			"from":         "accounts",
			"localField":   "user_id",
			"foreignField": "user_id",
			"as":           "accounts",
		}},
		{"$project": bson.M{
			"_id":           0,
			"user_id":       1,
			"total_balance": bson.M{"$toDecimal": bson.M{"$sum": "$accounts.balance"}},
		}},
		{"$sort": bson.M{"total_balance": -1}},
	}

	cur, err := db.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var segments []CustomerSegment
	for cur.Next(ctx) {
		var row struct {
			UserID       string               `bson:"user_id"`
			TotalBalance primitive.Decimal128 `bson:"total_balance"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		segments = append(segments, CustomerSegment{
			UserID:       row.UserID,
			TotalBalance: row.TotalBalance,
			Segment:      classify(row.TotalBalance),
		})
	}
	return segments, cur.Err()
}

func classify(total primitive.Decimal128) string {
	d, err := decimal.NewFromString(total.String())
	if err != nil {
		return "basic"
	}
	switch {
	case d.GreaterThanOrEqual(premiumFloor):
		return "premium"
	case d.GreaterThanOrEqual(standardFloor):
		return "standard"
	default:
		return "basic"
	}
}
