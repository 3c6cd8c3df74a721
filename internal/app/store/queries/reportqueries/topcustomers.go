// Package reportqueries provides complex read-only queries for reports.
package reportqueries

// Terminology: User Identifiers
//   - UserID / user_id: the business identifier (USER-XXXXXXXX) carried by
//     accounts, loans, and employees as a soft foreign key
//   - _id: the MongoDB ObjectID of a document, never exposed by reports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TopCustomer is one row of the top-customers-by-balance report.
type TopCustomer struct {
	UserID       string               `bson:"user_id"`
	FullName     string               `bson:"full_name"`
	AccountCount int64                `bson:"account_count"`
	TotalBalance primitive.Decimal128 `bson:"total_balance"`
}

// TopCustomersByBalance ranks customer-role users by the combined balance
// of all their accounts, highest first. Users in other roles never appear,
// and a customer with no accounts still ranks with a zero total.
func TopCustomersByBalance(ctx context.Context, db *mongo.Database, limit int64) ([]TopCustomer, error) {
	if limit <= 0 {
		limit = 10
	}

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
			"full_name":     1,
			"account_count": bson.M{"$size": "$accounts"},
			// $toDecimal keeps the empty-array sum (an int 0) decodable.
			"total_balance": bson.M{"$toDecimal": bson.M{"$sum": "$accounts.balance"}},
		}},
		{"$sort": bson.M{"total_balance": -1}},
		{"$limit": limit},
	}

	cur, err := db.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []TopCustomer
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
