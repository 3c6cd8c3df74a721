// internal/app/store/queries/reportqueries/userprofile.go
package reportqueries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	accountstore "github.com/dalemusser/bankhub/internal/app/store/accounts"
	cardstore "github.com/dalemusser/bankhub/internal/app/store/cards"
	loanstore "github.com/dalemusser/bankhub/internal/app/store/loans"
	transactionstore "github.com/dalemusser/bankhub/internal/app/store/transactions"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

// UserProfile bundles everything the bank knows about one customer.
type UserProfile struct {
	User               models.User
	Accounts           []models.Account
	Loans              []models.Loan
	Cards              []models.Card
	RecentTransactions []models.Transaction
}

// LoadUserProfile composes a customer's profile from the per-collection
// stores. The recent-transaction window covers all of the user's accounts,
// newest first, capped at recentLimit.
func LoadUserProfile(ctx context.Context, db *mongo.Database, userID string, recentLimit int64) (UserProfile, error) {
	if recentLimit <= 0 {
		recentLimit = 10
	}

	users := userstore.New(db)
	accounts := accountstore.New(db)
	loans := loanstore.New(db)
	cards := cardstore.New(db)
	transactions := transactionstore.New(db)

	user, err := users.GetByUserID(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}

	profile := UserProfile{User: user}

	profile.Accounts, err = accounts.ListByUserID(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}
	profile.Loans, err = loans.ListByUserID(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}

	accountIDs := make([]string, 0, len(profile.Accounts))
	for _, acct := range profile.Accounts {
		accountIDs = append(accountIDs, acct.AccountID)
	}

	if len(accountIDs) > 0 {
		profile.Cards, err = cards.Find(ctx, bson.M{"account_id": bson.M{"$in": accountIDs}})
		if err != nil {
			return UserProfile{}, err
		}

		profile.RecentTransactions, err = transactions.Find(ctx, bson.M{"$or": []bson.M{
			{"from_account_id": bson.M{"$in": accountIDs}},
			{"to_account_id": bson.M{"$in": accountIDs}},
		}}, options.Find().
			SetSort(bson.D{{Key: "date", Value: -1}}).
			SetLimit(recentLimit))
		if err != nil {
			return UserProfile{}, err
		}
	}

	return profile, nil
}
