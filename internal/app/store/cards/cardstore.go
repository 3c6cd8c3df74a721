// internal/app/store/cards/cardstore.go
package cardstore

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

var ErrDuplicateCard = errors.New("a card with this identifier or number already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("cards")}
}

func (s *Store) Create(ctx context.Context, card models.Card) (models.Card, error) {
	now := time.Now().UTC()
	card.ID = primitive.NewObjectID()
	card.CreatedAt = now
	card.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, card)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Card{}, ErrDuplicateCard
		}
		return models.Card{}, err
	}
	return card, nil
}

// GetByCardID loads a card by its business identifier (CARD-XXXXXXXX).
func (s *Store) GetByCardID(ctx context.Context, cardID string) (models.Card, error) {
	var card models.Card
	err := s.c.FindOne(ctx, bson.M{"card_id": cardID}).Decode(&card)
	if err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (s *Store) ExistsByCardID(ctx context.Context, cardID string) (bool, error) {
	return s.exists(ctx, bson.M{"card_id": cardID})
}

func (s *Store) ExistsByCardNumber(ctx context.Context, number string) (bool, error) {
	return s.exists(ctx, bson.M{"card_number": number})
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

// ListByAccountID returns all cards attached to the given account.
func (s *Store) ListByAccountID(ctx context.Context, accountID string) ([]models.Card, error) {
	return s.Find(ctx, bson.M{"account_id": accountID})
}

// UpdateStatus sets a new status and refreshes UpdatedAt.
// Transition legality is the pipeline's concern, not the store's.
func (s *Store) UpdateStatus(ctx context.Context, cardID, status string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"card_id": cardID}, bson.M{"$set": bson.M{
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

// Find returns cards matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Card, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cards []models.Card
	if err := cur.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Count returns the number of cards matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
