// Package transactions exposes the transaction endpoints: transfers,
// lookups, filtered lists, statistics and status updates.
package transactions

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/pipeline"
	transactionstore "github.com/dalemusser/bankhub/internal/app/store/transactions"
	"github.com/dalemusser/bankhub/internal/app/store/queries/reportqueries"
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
	DB           *mongo.Database
	Pipeline     *pipeline.Pipeline
	Transactions *transactionstore.Store
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Pipeline: p, Transactions: transactionstore.New(db), Log: logger}
}

// HandleCreate handles POST /transactions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.TransactionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.CreateTransaction(ctx, req)
	status := http.StatusCreated
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleGet handles GET /transactions/{transactionID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tx, err := h.Transactions.GetByTransactionID(ctx, txID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.Log.Error("get transaction failed", zap.String("transaction_id", txID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	doc, err := records.FromEntity(tx, h.Log)
	if err != nil {
		h.Log.Error("shape transaction failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleList handles GET /transactions with optional account_id=, from=,
// to= and largest=N parameters. Date bounds accept YYYY-MM-DD or a full
// second-precision timestamp; a bare date covers the whole day.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if accountID := q.Get("account_id"); accountID != "" {
		filter["$or"] = []bson.M{
			{"from_account_id": accountID},
			{"to_account_id": accountID},
		}
	}

	dateRange := bson.M{}
	if from := q.Get("from"); from != "" {
		bound, err := rangeBound(from, false)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "from must be a date or timestamp")
			return
		}
		dateRange["$gte"] = bound
	}
	if to := q.Get("to"); to != "" {
		bound, err := rangeBound(to, true)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "to must be a date or timestamp")
			return
		}
		dateRange["$lte"] = bound
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	// largest=N switches the sort from newest-first to biggest-first.
	sort := bson.D{{Key: "date", Value: -1}}
	limit := listLimit(q.Get("limit"))
	if raw := q.Get("largest"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			httpjson.Error(w, http.StatusBadRequest, "largest must be a positive integer")
			return
		}
		if n > maxListLimit {
			n = maxListLimit
		}
		sort = bson.D{{Key: "amount", Value: -1}}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	txs, err := h.Transactions.Find(ctx, filter, options.Find().SetSort(sort).SetLimit(limit))
	if err != nil {
		h.Log.Error("list transactions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	out := make([]map[string]any, 0, len(txs))
	for _, tx := range txs {
		doc, err := records.FromEntity(tx, h.Log)
		if err != nil {
			h.Log.Error("shape transaction failed", zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"transactions": out, "count": len(out)})
}

// HandleStats handles GET /transactions/stats with an optional account_id=
// parameter. Returns count, total, average, max and min over the matched
// transactions.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if accountID := r.URL.Query().Get("account_id"); accountID != "" {
		filter["$or"] = []bson.M{
			{"from_account_id": accountID},
			{"to_account_id": accountID},
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	stats, err := reportqueries.TransactionStatistics(ctx, h.DB, filter)
	if err != nil {
		h.Log.Error("transaction stats failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	doc, err := records.FromEntity(stats, h.Log)
	if err != nil {
		h.Log.Error("shape stats failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleHighValue handles GET /transactions/high-value?threshold=N&days=D:
// transactions at or above the threshold amount within the last D days
// (default 7), biggest first, newest first among equal amounts.
func (h *Handler) HandleHighValue(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("threshold")
	if raw == "" {
		httpjson.Error(w, http.StatusBadRequest, "threshold is required")
		return
	}
	threshold, err := parseMoneyParam(raw)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "threshold must be a number")
		return
	}

	days := int64(7)
	if rawDays := r.URL.Query().Get("days"); rawDays != "" {
		n, err := strconv.ParseInt(rawDays, 10, 64)
		if err != nil || n <= 0 {
			httpjson.Error(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	since := time.Now().UTC().AddDate(0, 0, int(-days)).Format(normalize.TimestampLayout)

	opts := options.Find().
		SetSort(bson.D{{Key: "amount", Value: -1}, {Key: "date", Value: -1}}).
		SetLimit(listLimit(r.URL.Query().Get("limit")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{
		"amount": bson.M{"$gte": threshold},
		"date":   bson.M{"$gte": since},
	}
	txs, err := h.Transactions.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("high-value list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	out := make([]map[string]any, 0, len(txs))
	for _, tx := range txs {
		doc, err := records.FromEntity(tx, h.Log)
		if err != nil {
			h.Log.Error("shape transaction failed", zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"transactions": out, "count": len(out)})
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus handles PUT /transactions/{transactionID}/status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionID")

	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.UpdateTransactionStatus(ctx, txID, req.Status)
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// rangeBound normalizes a query date bound to the stored timestamp layout.
// A bare date becomes the start of that day, or the end of it for the
// upper bound.
func rangeBound(raw string, end bool) (string, error) {
	if t, err := inputval.ParseDate(raw); err == nil {
		if end {
			return normalize.Date(t) + "T23:59:59", nil
		}
		return normalize.Date(t) + "T00:00:00", nil
	}
	t, err := inputval.ParseTimestamp(raw)
	if err != nil {
		return "", err
	}
	return normalize.Timestamp(t), nil
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
