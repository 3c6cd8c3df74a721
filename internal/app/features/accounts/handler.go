// Package accounts exposes the account endpoints: open, read, list,
// balance updates and closing.
package accounts

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/pipeline"
	accountstore "github.com/dalemusser/bankhub/internal/app/store/accounts"
	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/inputval"
	"github.com/dalemusser/bankhub/internal/app/system/normalize"
	"github.com/dalemusser/bankhub/internal/app/system/records"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Handler struct {
	Pipeline *pipeline.Pipeline
	Accounts *accountstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{Pipeline: p, Accounts: accountstore.New(db), Log: logger}
}

// HandleCreate handles POST /accounts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.AccountRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.CreateAccount(ctx, req)
	status := http.StatusCreated
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleGet handles GET /accounts/{accountID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	acct, err := h.Accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "account not found")
			return
		}
		h.Log.Error("get account failed", zap.String("account_id", accountID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	doc, err := records.FromEntity(acct, h.Log)
	if err != nil {
		h.Log.Error("shape account failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleList handles GET /accounts with optional user_id=, type=,
// min_balance=, sort=, order= and limit= parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if userID := q.Get("user_id"); userID != "" {
		filter["user_id"] = userID
	}
	if acctType := q.Get("type"); acctType != "" {
		filter["account_type"] = normalize.Status(acctType)
	}
	if raw := q.Get("min_balance"); raw != "" {
		floor, err := parseMoneyParam(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "min_balance must be a number")
			return
		}
		filter["balance"] = bson.M{"$gte": floor}
	}

	sortKey := "created_at"
	switch q.Get("sort") {
	case "", "created":
	case "balance":
		sortKey = "balance"
	case "open_date":
		sortKey = "open_date"
	default:
		httpjson.Error(w, http.StatusBadRequest, "sort must be created, balance or open_date")
		return
	}
	order := -1
	if q.Get("order") == "asc" {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: order}}).
		SetLimit(listLimit(q.Get("limit")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	accts, err := h.Accounts.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list accounts failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	out := make([]map[string]any, 0, len(accts))
	for _, a := range accts {
		doc, err := records.FromEntity(a, h.Log)
		if err != nil {
			h.Log.Error("shape account failed", zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"accounts": out, "count": len(out)})
}

// HandleBalance handles GET /accounts/{accountID}/balance.
func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	acct, err := h.Accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "account not found")
			return
		}
		h.Log.Error("get balance failed", zap.String("account_id", accountID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"account_id": acct.AccountID,
		"balance":    acct.Balance.String(),
		"currency":   acct.Currency,
	})
}

type balanceRequest struct {
	Amount string `json:"amount"`
}

// HandleUpdateBalance handles PUT /accounts/{accountID}/balance.
func (h *Handler) HandleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var req balanceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.UpdateAccountBalance(ctx, accountID, req.Amount)
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleClose handles POST /accounts/{accountID}/close.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.CloseAccount(ctx, accountID)
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

func parseMoneyParam(raw string) (primitive.Decimal128, error) {
	d, err := inputval.ParseMoney(raw)
	if err != nil {
		return primitive.Decimal128{}, err
	}
	return primitive.ParseDecimal128(normalize.Money(d))
}

func listLimit(raw string) int64 {
	if raw == "" {
		return defaultListLimit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultListLimit
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
