// internal/app/store/accounts/accountstore.go
package accountstore

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

var ErrDuplicateAccount = errors.New("an account with this identifier already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

func (s *Store) Create(ctx context.Context, acct models.Account) (models.Account, error) {
	now := time.Now().UTC()
	acct.ID = primitive.NewObjectID()
	acct.CreatedAt = now
	acct.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, acct)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateAccount
		}
		return models.Account{}, err
	}
	return acct, nil
}

// GetByAccountID loads an account by its business identifier (ACC-XXXXXXXX).
func (s *Store) GetByAccountID(ctx context.Context, accountID string) (models.Account, error) {
	var acct models.Account
	err := s.c.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&acct)
	if err != nil {
		return models.Account{}, err
	}
	return acct, nil
}

func (s *Store) ExistsByAccountID(ctx context.Context, accountID string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"account_id": accountID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUserID returns all accounts owned by the given user.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]models.Account, error) {
	return s.Find(ctx, bson.M{"user_id": userID})
}

// UpdateBalance sets a new balance and refreshes UpdatedAt.
func (s *Store) UpdateBalance(ctx context.Context, accountID string, balance primitive.Decimal128) error {
	return s.set(ctx, accountID, bson.M{"balance": balance})
}

// UpdateStatus sets a new status and refreshes UpdatedAt.
// Transition legality is the pipeline's concern, not the store's.
func (s *Store) UpdateStatus(ctx context.Context, accountID, status string) error {
	return s.set(ctx, accountID, bson.M{"status": status})
}

func (s *Store) set(ctx context.Context, accountID string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"account_id": accountID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Find returns accounts matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Account, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var accts []models.Account
	if err := cur.All(ctx, &accts); err != nil {
		return nil, err
	}
	return accts, nil
}

// Count returns the number of accounts matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
