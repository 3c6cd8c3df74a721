// Package reports exposes the aggregate reporting endpoints. All of them
// require a signed-in session.
package reports

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/inputval"
	"github.com/dalemusser/bankhub/internal/app/system/normalize"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// HandleTopCustomers handles GET /reports/top-customers?limit=N.
func (h *Handler) HandleTopCustomers(w http.ResponseWriter, r *http.Request) {
	limit := int64(10)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			httpjson.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := reportqueries.TopCustomersByBalance(ctx, h.DB, limit)
	if err != nil {
		h.Log.Error("top-customers report failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "report failed")
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"user_id":       row.UserID,
			"full_name":     row.FullName,
			"account_count": row.AccountCount,
			"total_balance": h.dec("total_balance", row.TotalBalance),
		})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"top_customers": out})
}

// HandleTransactionVolume handles GET /reports/transaction-volume?period=,
// grouping transactions by year, month or day. Month is the default
// granularity.
func (h *Handler) HandleTransactionVolume(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := reportqueries.TransactionVolumeByPeriod(ctx, h.DB, period)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "period must be year, month or day")
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"period": row.Period,
			"count":  row.Count,
			"total":  h.dec("total", row.Total),
		})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"period": period, "buckets": out})
}

// HandleBranchPerformance handles GET /reports/branch-performance.
func (h *Handler) HandleBranchPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := reportqueries.EmployeesByBranch(ctx, h.DB)
	if err != nil {
		h.Log.Error("branch-performance report failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "report failed")
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"branch_id":      row.BranchID,
			"employee_count": row.EmployeeCount,
			"total_salary":   h.dec("total_salary", row.TotalSalary),
			"average_salary": h.dec("average_salary", row.AverageSalary),
		})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"branches": out})
}

// HandleEmployeePerformance handles
// GET /reports/employee-performance?branch_id=: per-employee loan counts
// and volume within one branch.
func (h *Handler) HandleEmployeePerformance(w http.ResponseWriter, r *http.Request) {
	branchID := r.URL.Query().Get("branch_id")
	if branchID == "" {
		httpjson.Error(w, http.StatusBadRequest, "branch_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := reportqueries.EmployeePerformanceByBranch(ctx, h.DB, branchID)
	if err != nil {
		h.Log.Error("employee-performance report failed",
			zap.String("branch_id", branchID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "report failed")
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"employee_id":       row.EmployeeID,
			"full_name":         row.FullName,
			"position":          row.Position,
			"hire_date":         row.HireDate,
			"total_loans":       row.TotalLoans,
			"approved_loans":    row.ApprovedLoans,
			"total_loan_amount": row.TotalLoanAmount,
		})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"branch_id": branchID, "employees": out})
}

// HandleExpiringCards handles GET /reports/expiring-cards?before=YYYY-MM-DD.
// Without a cutoff it looks 90 days ahead.
func (h *Handler) HandleExpiringCards(w http.ResponseWriter, r *http.Request) {
	cutoff := time.Now().UTC().AddDate(0, 0, 90).Format(normalize.DateLayout)
	if raw := r.URL.Query().Get("before"); raw != "" {
		t, err := inputval.ParseDate(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "before must be YYYY-MM-DD")
			return
		}
		cutoff = normalize.Date(t)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := reportqueries.CardsExpiringBefore(ctx, h.DB, cutoff)
	if err != nil {
		h.Log.Error("expiring-cards report failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "report failed")
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"card_id":     row.CardID,
			"card_type":   row.CardType,
			"expiry_date": row.ExpiryDate,
			"account_id":  row.AccountID,
			"user_id":     row.UserID,
			"full_name":   row.FullName,
			"email":       row.Email,
		})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"cutoff": cutoff, "cards": out})
}

// HandleCustomerSegments handles GET /reports/customer-segments.
func (h *Handler) HandleCustomerSegments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := reportqueries.SegmentCustomers(ctx, h.DB)
	if err != nil {
		h.Log.Error("customer-segments report failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "report failed")
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"user_id":       row.UserID,
			"total_balance": h.dec("total_balance", row.TotalBalance),
			"segment":       row.Segment,
		})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"segments": out})
}

// dec converts a stored Decimal128 to an exact decimal for the response. A
// value that fails to parse degrades to its raw string.
func (h *Handler) dec(field string, v primitive.Decimal128) any {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		h.Log.Warn("report decimal failed to parse",
			zap.String("field", field), zap.String("value", v.String()), zap.Error(err))
		return v.String()
	}
	return d
}
