// internal/app/store/transactions/transactionstore.go
package transactionstore

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

var ErrDuplicateTransaction = errors.New("a transaction with this identifier already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("transactions")}
}

func (s *Store) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	now := time.Now().UTC()
	tx.ID = primitive.NewObjectID()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, tx)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Transaction{}, ErrDuplicateTransaction
		}
		return models.Transaction{}, err
	}
	return tx, nil
}

// GetByTransactionID loads a transaction by its business identifier (TX-XXXXXXXX).
func (s *Store) GetByTransactionID(ctx context.Context, txID string) (models.Transaction, error) {
	var tx models.Transaction
	err := s.c.FindOne(ctx, bson.M{"transaction_id": txID}).Decode(&tx)
	if err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

func (s *Store) ExistsByTransactionID(ctx context.Context, txID string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"transaction_id": txID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByAccountID returns transactions where the account is sender or
// receiver, newest first.
func (s *Store) ListByAccountID(ctx context.Context, accountID string, opts ...*options.FindOptions) ([]models.Transaction, error) {
	filter := bson.M{"$or": []bson.M{
		{"from_account_id": accountID},
		{"to_account_id": accountID},
	}}
	if len(opts) == 0 {
		opts = []*options.FindOptions{options.Find().SetSort(bson.D{{Key: "date", Value: -1}})}
	}
	return s.Find(ctx, filter, opts...)
}

// UpdateStatus sets a new status and refreshes UpdatedAt.
func (s *Store) UpdateStatus(ctx context.Context, txID, status string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"transaction_id": txID}, bson.M{"$set": bson.M{
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

// Find returns transactions matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Transaction, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var txs []models.Transaction
	if err := cur.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Count returns the number of transactions matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
