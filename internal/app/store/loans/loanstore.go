// internal/app/store/loans/loanstore.go
package loanstore

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

var ErrDuplicateLoan = errors.New("a loan with this identifier already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("loans")}
}

func (s *Store) Create(ctx context.Context, loan models.Loan) (models.Loan, error) {
	now := time.Now().UTC()
	loan.ID = primitive.NewObjectID()
	loan.CreatedAt = now
	loan.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, loan)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Loan{}, ErrDuplicateLoan
		}
		return models.Loan{}, err
	}
	return loan, nil
}

// GetByLoanID loads a loan by its business identifier (LOAN-XXXXXXXX).
func (s *Store) GetByLoanID(ctx context.Context, loanID string) (models.Loan, error) {
	var loan models.Loan
	err := s.c.FindOne(ctx, bson.M{"loan_id": loanID}).Decode(&loan)
	if err != nil {
		return models.Loan{}, err
	}
	return loan, nil
}

func (s *Store) ExistsByLoanID(ctx context.Context, loanID string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"loan_id": loanID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUserID returns all loans held by the given user.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]models.Loan, error) {
	return s.Find(ctx, bson.M{"user_id": userID})
}

// UpdateStatus sets a new status and refreshes UpdatedAt.
// Transition legality is the pipeline's concern, not the store's.
func (s *Store) UpdateStatus(ctx context.Context, loanID, status string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"loan_id": loanID}, bson.M{"$set": bson.M{
		"status":     status,
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

// Find returns loans matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Loan, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var loans []models.Loan
	if err := cur.All(ctx, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Count returns the number of loans matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
