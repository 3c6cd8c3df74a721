// Package cards exposes the card endpoints: issuing, lookups, lists and
// blocking.
package cards

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/pipeline"
	cardstore "github.com/dalemusser/bankhub/internal/app/store/cards"
	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/normalize"
	"github.com/dalemusser/bankhub/internal/app/system/records"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Handler struct {
	Pipeline *pipeline.Pipeline
	Cards    *cardstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{Pipeline: p, Cards: cardstore.New(db), Log: logger}
}

// HandleCreate handles POST /cards.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.CardRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.CreateCard(ctx, req)
	status := http.StatusCreated
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// HandleGet handles GET /cards/{cardID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	card, err := h.Cards.GetByCardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "card not found")
			return
		}
		h.Log.Error("get card failed", zap.String("card_id", cardID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	httpjson.Write(w, http.StatusOK, shapeCard(card, h.Log))
}

// HandleList handles GET /cards with optional account_id=, status=,
// expired=true and limit= parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if accountID := q.Get("account_id"); accountID != "" {
		filter["account_id"] = accountID
	}
	if status := q.Get("status"); status != "" {
		filter["status"] = normalize.Status(status)
	}
	if q.Get("expired") == "true" {
		filter["expiry_date"] = bson.M{"$lt": time.Now().UTC().Format(normalize.DateLayout)}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "expiry_date", Value: 1}}).
		SetLimit(listLimit(q.Get("limit")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cards, err := h.Cards.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list cards failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	out := make([]map[string]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, shapeCard(c, h.Log))
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"cards": out, "count": len(out)})
}

// HandleBlock handles POST /cards/{cardID}/block.
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res := h.Pipeline.BlockCard(ctx, cardID)
	status := http.StatusOK
	if !res.OK {
		status = http.StatusBadRequest
	}
	httpjson.Write(w, status, res)
}

// shapeCard adds the computed expired flag next to the stored status. The
// flag comes from the expiry date at read time; blocked stays the stored
// status regardless.
func shapeCard(card models.Card, log *zap.Logger) map[string]any {
	doc, err := records.FromEntity(card, log)
	if err != nil {
		log.Error("shape card failed", zap.Error(err))
		doc = map[string]any{"card_id": card.CardID}
	}
	doc["expired"] = card.ExpiryDate != "" &&
		card.ExpiryDate < time.Now().UTC().Format(normalize.DateLayout)
	return doc
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
