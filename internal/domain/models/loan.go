// internal/domain/models/loan.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loan is a loan held by a user.
type Loan struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	LoanID       string               `bson:"loan_id" json:"loan_id"`
	UserID       string               `bson:"user_id" json:"user_id"`
	LoanAmount   primitive.Decimal128 `bson:"loan_amount" json:"loan_amount"`
	InterestRate primitive.Decimal128 `bson:"interest_rate" json:"interest_rate"`
	StartDate    string               `bson:"start_date" json:"start_date"` // YYYY-MM-DD
	Duration     int                  `bson:"duration" json:"duration"`     // months
	Status       string               `bson:"status" json:"status"`         // requested | approved | paid

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
