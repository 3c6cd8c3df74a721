// Package statements renders an account's transaction history as a PDF or
// XLSX download. Both formats share one statement loader; only the
// rendering differs.
package statements

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	accountstore "github.com/dalemusser/bankhub/internal/app/store/accounts"
	transactionstore "github.com/dalemusser/bankhub/internal/app/store/transactions"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/app/system/inputval"
	"github.com/dalemusser/bankhub/internal/app/system/normalize"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

// statementMaxRows caps how many transactions one statement carries.
const statementMaxRows = 1000

// errBadDateParam marks a malformed from= or to= query parameter.
var errBadDateParam = errors.New("bad date parameter")

type Handler struct {
	Accounts     *accountstore.Store
	Transactions *transactionstore.Store
	Users        *userstore.Store
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Accounts:     accountstore.New(db),
		Transactions: transactionstore.New(db),
		Users:        userstore.New(db),
		Log:          logger,
	}
}

// statement is everything a rendered statement needs.
type statement struct {
	Account      models.Account
	Holder       models.User
	From, To     string // YYYY-MM-DD, inclusive
	Transactions []models.Transaction
	GeneratedAt  time.Time
}

// load gathers the account, its holder, and the transactions in the window.
// The default window is the 30 days up to today.
func (h *Handler) load(ctx context.Context, accountID string, r *http.Request) (statement, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30).Format(normalize.DateLayout)
	to := now.Format(normalize.DateLayout)

	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		t, err := inputval.ParseDate(raw)
		if err != nil {
			return statement{}, fmt.Errorf("%w: from must be YYYY-MM-DD", errBadDateParam)
		}
		from = normalize.Date(t)
	}
	if raw := q.Get("to"); raw != "" {
		t, err := inputval.ParseDate(raw)
		if err != nil {
			return statement{}, fmt.Errorf("%w: to must be YYYY-MM-DD", errBadDateParam)
		}
		to = normalize.Date(t)
	}

	acct, err := h.Accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		return statement{}, err
	}
	holder, err := h.Users.GetByUserID(ctx, acct.UserID)
	if err != nil && err != mongo.ErrNoDocuments {
		return statement{}, err
	}

	txs, err := h.Transactions.Find(ctx, bson.M{
		"$or": []bson.M{
			{"from_account_id": accountID},
			{"to_account_id": accountID},
		},
		"date": bson.M{
			"$gte": from + "T00:00:00",
			"$lte": to + "T23:59:59",
		},
	}, options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetLimit(statementMaxRows))
	if err != nil {
		return statement{}, err
	}

	return statement{
		Account:      acct,
		Holder:       holder,
		From:         from,
		To:           to,
		Transactions: txs,
		GeneratedAt:  now,
	}, nil
}

// direction labels a transaction from the statement account's point of view.
func direction(tx models.Transaction, accountID string) string {
	if tx.FromAccountID == accountID {
		return "debit"
	}
	return "credit"
}
