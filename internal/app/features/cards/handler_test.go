package cards_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/features/cards"
	"github.com/dalemusser/bankhub/internal/app/pipeline"
	"github.com/dalemusser/bankhub/internal/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := cards.NewHandler(db, pipeline.New(db, logger), logger)
	return cards.Routes(h), testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Card One", "card1@example.com", "card1")
	acct := fx.CreateAccount(ctx, owner.UserID, "100.00")

	body := fmt.Sprintf(`{
		"account_id": %q,
		"card_type": "debit",
		"card_number": "4111-1111-1111-1111",
		"cvv": "123",
		"expiry_date": "2030-01-01"
	}`, acct.AccountID)
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleGet_RedactsCVV(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Card Two", "card2@example.com", "card2")
	acct := fx.CreateAccount(ctx, owner.UserID, "100.00")
	card := fx.CreateCard(ctx, acct.AccountID, "4222222222222222", "2030-05-01")

	req := httptest.NewRequest("GET", "/"+card.CardID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if _, leaked := doc["cvv"]; leaked {
		t.Error("cvv must not appear in responses")
	}
	if doc["expired"] != false {
		t.Errorf("expired = %v, want false", doc["expired"])
	}
}

func TestHandleBlock_Terminal(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Card Three", "card3@example.com", "card3")
	acct := fx.CreateAccount(ctx, owner.UserID, "100.00")
	card := fx.CreateCard(ctx, acct.AccountID, "4333333333333333", "2030-05-01")

	req := httptest.NewRequest("POST", "/"+card.CardID+"/block", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first block: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("POST", "/"+card.CardID+"/block", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second block: status = %d, want 400", rec.Code)
	}
}

func TestHandleList_Expired(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Card Four", "card4@example.com", "card4")
	acct := fx.CreateAccount(ctx, owner.UserID, "100.00")
	old := fx.CreateCard(ctx, acct.AccountID, "4444444444444444", "2020-01-01")
	fx.CreateCard(ctx, acct.AccountID, "4555555555555555", "2031-01-01")

	req := httptest.NewRequest("GET", "/?expired=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Cards []map[string]any `json:"cards"`
		Count int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Cards[0]["card_id"] != old.CardID {
		t.Errorf("card_id = %v, want %s", resp.Cards[0]["card_id"], old.CardID)
	}
	if resp.Cards[0]["expired"] != true {
		t.Errorf("expired = %v, want true", resp.Cards[0]["expired"])
	}
}
