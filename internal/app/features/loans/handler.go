// Package loans exposes the loan endpoints: requests, lookups, lists and
// approval.
package loans

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/pipeline"
	loanstore "github.com/dalemusser/bankhub/internal/app/store/loans"
	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
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
	Loans    *loanstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{Pipeline: p, Loans: loanstore.New(db), Log: logger}
}

// HandleCreate handles POST /loans.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.LoanRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.CreateLoan(ctx, req)
	status := http.StatusCreated
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleGet handles GET /loans/{loanID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	loan, err := h.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "loan not found")
			return
		}
		h.Log.Error("get loan failed", zap.String("loan_id", loanID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	doc, err := records.FromEntity(loan, h.Log)
	if err != nil {
		h.Log.Error("shape loan failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleList handles GET /loans with optional user_id=, status= and
// limit= parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if userID := q.Get("user_id"); userID != "" {
		filter["user_id"] = userID
	}
	if status := q.Get("status"); status != "" {
		filter["status"] = normalize.Status(status)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(listLimit(q.Get("limit")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	loans, err := h.Loans.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list loans failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	out := make([]map[string]any, 0, len(loans))
	for _, l := range loans {
		doc, err := records.FromEntity(l, h.Log)
		if err != nil {
			h.Log.Error("shape loan failed", zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"loans": out, "count": len(out)})
}

// HandleApprove handles POST /loans/{loanID}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.ApproveLoan(ctx, loanID)
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
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
