// Package employees exposes the employee endpoints: hiring, lookups,
// branch lists, and position/salary updates.
package employees

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
	employeestore "github.com/dalemusser/bankhub/internal/app/store/employees"
	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/records"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Handler struct {
	Pipeline  *pipeline.Pipeline
	Employees *employeestore.Store
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{Pipeline: p, Employees: employeestore.New(db), Log: logger}
}

// HandleCreate handles POST /employees.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.EmployeeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.CreateEmployee(ctx, req)
	status := http.StatusCreated
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleGet handles GET /employees/{employeeID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "employee not found")
			return
		}
		h.Log.Error("get employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	doc, err := records.FromEntity(emp, h.Log)
	if err != nil {
		h.Log.Error("shape employee failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleList handles GET /employees with optional branch_id=, position=
// and limit= parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if branchID := q.Get("branch_id"); branchID != "" {
		filter["branch_id"] = branchID
	}
	if position := q.Get("position"); position != "" {
		filter["position"] = position
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "hire_date", Value: 1}}).
		SetLimit(listLimit(q.Get("limit")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emps, err := h.Employees.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list employees failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	out := make([]map[string]any, 0, len(emps))
	for _, e := range emps {
		doc, err := records.FromEntity(e, h.Log)
		if err != nil {
			h.Log.Error("shape employee failed", zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"employees": out, "count": len(out)})
}

type updateRequest struct {
	NewPosition string `json:"new_position"`
	NewSalary   string `json:"new_salary"`
}

// HandleUpdate handles PUT /employees/{employeeID}: position and salary
// change together.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.UpdateEmployee(ctx, employeeID, req.NewPosition, req.NewSalary)
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
