package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/features/users"
	"github.com/dalemusser/bankhub/internal/app/pipeline"
	"github.com/dalemusser/bankhub/internal/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := users.NewHandler(db, pipeline.New(db, logger), logger)
	return users.Routes(h), testutil.NewFixtures(t, db)
}

const createBody = `{
	"full_name": "Jane Roe",
	"email": "jane@example.com",
	"phone": "+12025550101",
	"address": {"country": "Netherlands", "city": "Utrecht", "street": "Canal 12"},
	"role": "customer",
	"username": "janeroe",
	"password": "pass-word-1"
}`

func TestHandleCreate(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/", strings.NewReader(createBody))
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

	// duplicate email must be rejected
	req = httptest.NewRequest("POST", "/", strings.NewReader(createBody))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate create: status = %d, want 400", rec.Code)
	}
}

func TestHandleGet(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Carol Jones", "carol@example.com", "carolj")

	req := httptest.NewRequest("GET", "/"+user.UserID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if doc["user_id"] != user.UserID {
		t.Errorf("user_id = %v, want %s", doc["user_id"], user.UserID)
	}
	if _, leaked := doc["password_hash"]; leaked {
		t.Error("password_hash must not appear in responses")
	}
	if _, leaked := doc["_id"]; leaked {
		t.Error("_id must not appear in responses")
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/USER-DEADBEEF", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleList_SearchAndRole(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "Ana Garcia", "ana@example.com", "anag")
	fx.CreateUser(ctx, "Bruno Diaz", "bruno@example.com", "brunod")

	req := httptest.NewRequest("GET", "/?role=customer&search=garcia", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Users []map[string]any `json:"users"`
		Count int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Users[0]["full_name"] != "Ana Garcia" {
		t.Errorf("full_name = %v, want Ana Garcia", resp.Users[0]["full_name"])
	}
}

func TestHandleProfile(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Dan Brown", "dan@example.com", "danb")
	acct := fx.CreateAccount(ctx, user.UserID, "500.00")
	other := fx.CreateAccount(ctx, user.UserID, "100.00")
	fx.CreateTransaction(ctx, acct.AccountID, other.AccountID, "25.00", "")
	fx.CreateLoan(ctx, user.UserID, "9000.00")

	req := httptest.NewRequest("GET", "/"+user.UserID+"/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User     map[string]any   `json:"user"`
		Accounts []map[string]any `json:"accounts"`
		Loans    []map[string]any `json:"loans"`
		Recent   []map[string]any `json:"recent_transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Errorf("accounts = %d, want 2", len(resp.Accounts))
	}
	if len(resp.Loans) != 1 {
		t.Errorf("loans = %d, want 1", len(resp.Loans))
	}
	if len(resp.Recent) != 1 {
		t.Errorf("recent transactions = %d, want 1", len(resp.Recent))
	}
}

func TestHandleUpdate(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Eve Stone", "eve@example.com", "evestone")

	body := `{
		"full_name": "Eve Rivers",
		"email": "eve@example.com",
		"phone": "+12025550102",
		"address": {"country": "Netherlands", "city": "Leiden", "street": "Oude Singel 1"},
		"role": "customer",
		"username": "evestone"
	}`
	req := httptest.NewRequest("PUT", "/"+user.UserID, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/"+user.UserID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if doc["full_name"] != "Eve Rivers" {
		t.Errorf("full_name = %v, want Eve Rivers", doc["full_name"])
	}
}
