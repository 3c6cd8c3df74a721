// internal/domain/models/transaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is a transfer between two accounts.
//
// Date keeps the original's second-precision layout (YYYY-MM-DDTHH:MM:SS)
// as a string; lexicographic order on that layout matches chronological
// order, which the date-range filters rely on.
type Transaction struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	TransactionID string               `bson:"transaction_id" json:"transaction_id"`
	FromAccountID string               `bson:"from_account_id" json:"from_account_id"`
	ToAccountID   string               `bson:"to_account_id" json:"to_account_id"`
	Amount        primitive.Decimal128 `bson:"amount" json:"amount"`
	Date          string               `bson:"date" json:"date"`
	Type          string               `bson:"type" json:"type"`
	Status        string               `bson:"status" json:"status"` // completed | pending | failed

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
