// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is a bank account owned by a user.
//
// Balance is stored as Decimal128 so the store keeps the exact decimal
// value (never a binary float) while range filters and sorts still compare
// numerically. The canonical 2-decimal-place scale set by the mutation
// pipeline survives the round trip.
type Account struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	AccountID   string               `bson:"account_id" json:"account_id"`
	UserID      string               `bson:"user_id" json:"user_id"`
	AccountType string               `bson:"account_type" json:"account_type"` // checking | savings | business
	Balance     primitive.Decimal128 `bson:"balance" json:"balance"`
	Currency    string               `bson:"currency" json:"currency"` // 3-letter ISO code
	Status      string               `bson:"status" json:"status"`     // active | closed
	OpenDate    string               `bson:"open_date" json:"open_date"` // YYYY-MM-DD

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
