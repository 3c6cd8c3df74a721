// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/bankhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateUser = errors.New("a user with this identifier, email, or username already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.FullNameCI = text.Fold(user.FullName)
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, user)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return user, nil
}

// GetByUserID loads a user by its business identifier (USER-XXXXXXXX).
func (s *Store) GetByUserID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetByUsername loads a user by username, used by login.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	return s.exists(ctx, bson.M{"user_id": userID})
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.M{"email": email})
}

func (s *Store) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, bson.M{"username": username})
}

// EmailExistsForOther checks whether a different user already holds the email.
// Used on update so the current record may keep its own address.
func (s *Store) EmailExistsForOther(ctx context.Context, email, userID string) (bool, error) {
	return s.exists(ctx, bson.M{"email": email, "user_id": bson.M{"$ne": userID}})
}

// UsernameExistsForOther checks whether a different user already holds the username.
func (s *Store) UsernameExistsForOther(ctx context.Context, username, userID string) (bool, error) {
	return s.exists(ctx, bson.M{"username": username, "user_id": bson.M{"$ne": userID}})
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

// Update replaces a user's mutable fields and refreshes UpdatedAt.
// Every field is rewritten; callers run the full validation pipeline first.
func (s *Store) Update(ctx context.Context, userID string, user models.User) error {
	set := bson.M{
		"full_name":    user.FullName,
		"full_name_ci": text.Fold(user.FullName),
		"email":        user.Email,
		"phone":        user.Phone,
		"address":      user.Address,
		"role":         user.Role,
		"username":     user.Username,
		"updated_at":   time.Now().UTC(),
	}
	if user.PasswordHash != "" {
		set["password_hash"] = user.PasswordHash
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateUser
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Find returns users matching the given filter with optional find options.
// The caller builds the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of users matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
