// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Terminology: User Identifiers
//   - ID / _id: the MongoDB ObjectID of the document itself
//   - UserID / user_id: the business identifier (USER-XXXXXXXX) other
//     entities reference as a soft foreign key

// Address is the nested address element of a User document.
type Address struct {
	Country string `bson:"country" json:"country"`
	City    string `bson:"city" json:"city"`
	Street  string `bson:"street" json:"street"`
}

// User represents customers and bank staff.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID       string             `bson:"user_id" json:"user_id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      Address            `bson:"address" json:"address"`
	Role         string             `bson:"role" json:"role"` // customer | employee
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
