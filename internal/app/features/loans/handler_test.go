package loans_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/features/loans"
	"github.com/dalemusser/bankhub/internal/app/pipeline"
	"github.com/dalemusser/bankhub/internal/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := loans.NewHandler(db, pipeline.New(db, logger), logger)
	return loans.Routes(h), testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	borrower := fx.CreateUser(ctx, "Loan One", "loan1@example.com", "loan1")

	body := fmt.Sprintf(`{
		"user_id": %q,
		"loan_amount": "20000.00",
		"interest_rate": "3.5",
		"duration": 48
	}`, borrower.UserID)
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

func TestHandleCreate_NegativeRate(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	borrower := fx.CreateUser(ctx, "Loan Two", "loan2@example.com", "loan2")

	body := fmt.Sprintf(`{
		"user_id": %q,
		"loan_amount": "20000.00",
		"interest_rate": "-1",
		"duration": 48
	}`, borrower.UserID)
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var res pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	want := "Error: InterestRate must be a positive number."
	if res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}
}

func TestHandleApprove(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	borrower := fx.CreateUser(ctx, "Loan Three", "loan3@example.com", "loan3")
	loan := fx.CreateLoan(ctx, borrower.UserID, "5000.00")

	req := httptest.NewRequest("POST", "/"+loan.LoanID+"/approve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/"+loan.LoanID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if doc["status"] != "approved" {
		t.Errorf("status = %v, want approved", doc["status"])
	}
}

func TestHandleList_ByStatus(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	borrower := fx.CreateUser(ctx, "Loan Four", "loan4@example.com", "loan4")
	fx.CreateLoan(ctx, borrower.UserID, "1000.00")
	approved := fx.CreateLoan(ctx, borrower.UserID, "2000.00")

	req := httptest.NewRequest("POST", "/"+approved.LoanID+"/approve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/?status=requested", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		Loans []map[string]any `json:"loans"`
		Count int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}
