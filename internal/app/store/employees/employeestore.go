// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/bankhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmployee = errors.New("an employee with this identifier already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("employees")}
}

func (s *Store) Create(ctx context.Context, emp models.Employee) (models.Employee, error) {
	now := time.Now().UTC()
	emp.ID = primitive.NewObjectID()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, emp)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Employee{}, ErrDuplicateEmployee
		}
		return models.Employee{}, err
	}
	return emp, nil
}

// GetByEmployeeID loads an employee by its business identifier (EMP-XXXXXXXX).
func (s *Store) GetByEmployeeID(ctx context.Context, employeeID string) (models.Employee, error) {
	var emp models.Employee
	err := s.c.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&emp)
	if err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

func (s *Store) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	return s.exists(ctx, bson.M{"employee_id": employeeID})
}

// ExistsByUserID reports whether the user already has an employee record.
func (s *Store) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	return s.exists(ctx, bson.M{"user_id": userID})
}

// BranchKnown reports whether any employee record already carries the branch.
// The collection itself is the branch registry, so the first employee of a
// brand-new installation bootstraps the first branch: an empty collection
// accepts any branch identifier.
func (s *Store) BranchKnown(ctx context.Context, branchID string) (bool, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	if total == 0 {
		return true, nil
	}
	return s.exists(ctx, bson.M{"branch_id": branchID})
}

func (s *Store) exists(ctx context.Context, filter bson.M) (bool, error) {
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update sets an employee's position and salary and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, employeeID, position string, salary primitive.Decimal128) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": bson.M{
		"position":   position,
		"salary":     salary,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Find returns employees matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Employee, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var emps []models.Employee
	if err := cur.All(ctx, &emps); err != nil {
		return nil, err
	}
	return emps, nil
}

// Count returns the number of employees matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
