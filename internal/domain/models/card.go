// internal/domain/models/card.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card is a payment card attached to an account.
//
// "expired" is a computed condition (ExpiryDate in the past), surfaced by
// the read layer; it is never persisted as a status transition.
type Card struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CardID     string             `bson:"card_id" json:"card_id"`
	AccountID  string             `bson:"account_id" json:"account_id"`
	CardType   string             `bson:"card_type" json:"card_type"`
	CardNumber string             `bson:"card_number" json:"card_number"`
	CVV        string             `bson:"cvv" json:"-"`
	ExpiryDate string             `bson:"expiry_date" json:"expiry_date"` // YYYY-MM-DD
	Status     string             `bson:"status" json:"status"`           // active | inactive | blocked | expired

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
