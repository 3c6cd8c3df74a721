package accounts_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/features/accounts"
	"github.com/dalemusser/bankhub/internal/app/pipeline"
	"github.com/dalemusser/bankhub/internal/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := accounts.NewHandler(db, pipeline.New(db, logger), logger)
	return accounts.Routes(h), testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner One", "owner1@example.com", "owner1")

	body := fmt.Sprintf(`{
		"user_id": %q,
		"account_type": "savings",
		"balance": "1250.00",
		"currency": "EUR"
	}`, owner.UserID)
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !res.OK || res.ID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestHandleCreate_UnknownOwner(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"user_id": "USER-DEADBEEF", "account_type": "checking", "balance": "10.00", "currency": "USD"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleBalance(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner Two", "owner2@example.com", "owner2")
	acct := fx.CreateAccount(ctx, owner.UserID, "777.70")

	req := httptest.NewRequest("GET", "/"+acct.AccountID+"/balance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccountID string `json:"account_id"`
		Balance   string `json:"balance"`
		Currency  string `json:"currency"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Balance != "777.70" {
		t.Errorf("balance = %q, want 777.70", resp.Balance)
	}
}

func TestHandleUpdateBalance(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner Three", "owner3@example.com", "owner3")
	acct := fx.CreateAccount(ctx, owner.UserID, "100.00")

	req := httptest.NewRequest("PUT", "/"+acct.AccountID+"/balance",
		strings.NewReader(`{"amount": "250.50"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/"+acct.AccountID+"/balance", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Balance != "250.50" {
		t.Errorf("balance = %q, want 250.50", resp.Balance)
	}
}

func TestHandleClose_Twice(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner Four", "owner4@example.com", "owner4")
	acct := fx.CreateAccount(ctx, owner.UserID, "0.00")

	req := httptest.NewRequest("POST", "/"+acct.AccountID+"/close", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first close: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// closed is terminal
	req = httptest.NewRequest("POST", "/"+acct.AccountID+"/close", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second close: status = %d, want 400", rec.Code)
	}
}

func TestHandleList_MinBalance(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner Five", "owner5@example.com", "owner5")
	fx.CreateAccount(ctx, owner.UserID, "50.00")
	rich := fx.CreateAccount(ctx, owner.UserID, "5000.00")

	req := httptest.NewRequest("GET", "/?min_balance=1000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Accounts []map[string]any `json:"accounts"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Accounts[0]["account_id"] != rich.AccountID {
		t.Errorf("account_id = %v, want %s", resp.Accounts[0]["account_id"], rich.AccountID)
	}
}
