// internal/app/store/queries/reportqueries/expiringcards.go
package reportqueries

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/bankhub/internal/app/system/normalize"
)

// ExpiringCard is one row of the expiring-cards report: the card joined
// with its account's owner so the bank can reach the holder.
type ExpiringCard struct {
	CardID     string `bson:"card_id"`
	CardType   string `bson:"card_type"`
	ExpiryDate string `bson:"expiry_date"`
	AccountID  string `bson:"account_id"`
	UserID     string `bson:"user_id"`
	FullName   string `bson:"full_name"`
	Email      string `bson:"email"`
}

// CardsExpiringBefore lists active cards whose expiry date falls between
// today and cutoff (YYYY-MM-DD), soonest first. Already-expired, blocked,
// and inactive cards are skipped.
func CardsExpiringBefore(ctx context.Context, db *mongo.Database, cutoff string) ([]ExpiringCard, error) {
	today := time.Now().UTC().Format(normalize.DateLayout)
	pipeline := []bson.M{
		{"$match": bson.M{
			"status":      "active",
			"expiry_date": bson.M{"$gte": today, "$lt": cutoff},
		}},
		{"$lookup": bson.M{
			"from":         "accounts",
			"localField":   "account_id",
			"foreignField": "account_id",
			"as":           "account",
		}},
		{"$unwind": "$account"},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "account.user_id",
			"foreignField": "user_id",
			"as":           "user",
		}},
		{"$unwind": "$user"},
		{"$project": bson.M{
			"card_id":     1,
			"card_type":   1,
			"expiry_date": 1,
			"account_id":  1,
			"user_id":     "$user.user_id",
			"full_name":   "$user.full_name",
			"email":       "$user.email",
		}},
		{"$sort": bson.M{"expiry_date": 1}},
	}

	cur, err := db.Collection("cards").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []ExpiringCard
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
