// internal/domain/models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee links a user to a staff position at a branch.
type Employee struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	EmployeeID string               `bson:"employee_id" json:"employee_id"`
	UserID     string               `bson:"user_id" json:"user_id"`
	Position   string               `bson:"position" json:"position"`
	BranchID   string               `bson:"branch_id" json:"branch_id"`
	HireDate   string               `bson:"hire_date" json:"hire_date"` // YYYY-MM-DD
	Salary     primitive.Decimal128 `bson:"salary" json:"salary"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
