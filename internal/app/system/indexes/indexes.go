// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Problems are aggregated so any failure is visible and startup can fail fast.

The unique indexes back the pipeline's existence checks: a concurrent
duplicate that slips between check and insert is rejected here and surfaces
as a conflict.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureAccounts(ctx, db); err != nil {
		problems = append(problems, "accounts: "+err.Error())
	}
	if err := ensureTransactions(ctx, db); err != nil {
		problems = append(problems, "transactions: "+err.Error())
	}
	if err := ensureLoans(ctx, db); err != nil {
		problems = append(problems, "loans: "+err.Error())
	}
	if err := ensureCards(ctx, db); err != nil {
		problems = append(problems, "cards: "+err.Error())
	}
	if err := ensureEmployees(ctx, db); err != nil {
		problems = append(problems, "employees: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func createIndexes(ctx context.Context, db *mongo.Database, collection string, idxs []mongo.IndexModel) error {
	_, err := db.Collection(collection).Indexes().CreateMany(ctx, idxs)
	return err
}

func unique(key string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: key, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func plain(key string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}}
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "users", []mongo.IndexModel{
		unique("user_id"),
		unique("email"),
		unique("username"),
		plain("role"),
		plain("full_name_ci"),
	})
}

func ensureAccounts(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "accounts", []mongo.IndexModel{
		unique("account_id"),
		plain("user_id"),
		plain("account_type"),
		plain("balance"),
	})
}

func ensureTransactions(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "transactions", []mongo.IndexModel{
		unique("transaction_id"),
		plain("from_account_id"),
		plain("to_account_id"),
		plain("date"),
		plain("amount"),
	})
}

func ensureLoans(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "loans", []mongo.IndexModel{
		unique("loan_id"),
		plain("user_id"),
		plain("status"),
	})
}

func ensureCards(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "cards", []mongo.IndexModel{
		unique("card_id"),
		unique("card_number"),
		plain("account_id"),
		plain("status"),
		plain("expiry_date"),
	})
}

func ensureEmployees(ctx context.Context, db *mongo.Database) error {
	return createIndexes(ctx, db, "employees", []mongo.IndexModel{
		unique("employee_id"),
		plain("user_id"),
		plain("branch_id"),
	})
}
