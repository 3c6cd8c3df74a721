// Package users exposes the user CRUD and profile endpoints.
package users

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/waffle/pantry/text"

	"github.com/dalemusser/bankhub/internal/app/pipeline"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/records"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Handler struct {
	DB       *mongo.Database
	Pipeline *pipeline.Pipeline
	Users    *userstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Pipeline: p, Users: userstore.New(db), Log: logger}
}

// HandleCreate handles POST /users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.UserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.CreateUser(ctx, req)
	status := http.StatusCreated
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleGet handles GET /users/{userID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("get user failed", zap.String("user_id", userID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	doc, err := records.FromEntity(user, h.Log)
	if err != nil {
		h.Log.Error("shape user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleUpdate handles PUT /users/{userID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req pipeline.UserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.UpdateUser(ctx, userID, req)
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleList handles GET /users with optional role=, search=, sort= and
// limit= parameters. Search matches on the case/diacritic-folded full name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if role := q.Get("role"); role != "" {
		filter["role"] = role
	}
	if search := q.Get("search"); search != "" {
		filter["full_name_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(search))}
	}

	sortKey := "created_at"
	order := -1
	switch q.Get("sort") {
	case "", "newest":
	case "name":
		sortKey, order = "full_name_ci", 1
	case "oldest":
		order = 1
	default:
		httpjson.Error(w, http.StatusBadRequest, "sort must be newest, oldest or name")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: order}}).
		SetLimit(listLimit(q.Get("limit")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		doc, err := records.FromEntity(u, h.Log)
		if err != nil {
			h.Log.Error("shape user failed", zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"users": out, "count": len(out)})
}

// HandleProfile handles GET /users/{userID}/profile: the user plus their
// accounts, loans, cards and most recent transactions in one response.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	profile, err := reportqueries.LoadUserProfile(ctx, h.DB, userID, 10)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load profile failed", zap.String("user_id", userID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	shaped, err := shapeProfile(profile, h.Log)
	if err != nil {
		h.Log.Error("shape profile failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	httpjson.Write(w, http.StatusOK, shaped)
}

func shapeProfile(p reportqueries.UserProfile, log *zap.Logger) (map[string]any, error) {
	user, err := records.FromEntity(p.User, log)
	if err != nil {
		return nil, err
	}

	accounts := make([]map[string]any, 0, len(p.Accounts))
	for _, a := range p.Accounts {
		doc, err := records.FromEntity(a, log)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, doc)
	}
	loans := make([]map[string]any, 0, len(p.Loans))
	for _, l := range p.Loans {
		doc, err := records.FromEntity(l, log)
		if err != nil {
			return nil, err
		}
		loans = append(loans, doc)
	}
	cards := make([]map[string]any, 0, len(p.Cards))
	for _, c := range p.Cards {
		doc, err := records.FromEntity(c, log)
		if err != nil {
			return nil, err
		}
		cards = append(cards, doc)
	}
	recent := make([]map[string]any, 0, len(p.RecentTransactions))
	for _, tx := range p.RecentTransactions {
		doc, err := records.FromEntity(tx, log)
		if err != nil {
			return nil, err
		}
		recent = append(recent, doc)
	}

	return map[string]any{
		"user":                user,
		"accounts":            accounts,
		"loans":               loans,
		"cards":               cards,
		"recent_transactions": recent,
	}, nil
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
