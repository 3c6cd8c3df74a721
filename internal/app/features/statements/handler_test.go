package statements_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/features/statements"
	"github.com/dalemusser/bankhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*statements.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return statements.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandlePDF(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Statement Customer", "stmt@example.com", "stmt")
	acct := fx.CreateAccount(ctx, owner.UserID, "840.00")
	other := fx.CreateAccount(ctx, owner.UserID, "100.00")
	fx.CreateTransaction(ctx, acct.AccountID, other.AccountID, "60.00", "")

	req := httptest.NewRequest("GET", "/accounts/"+acct.AccountID+"/statement.pdf", nil)
	req = testutil.WithChiURLParam(req, "accountID", acct.AccountID)
	rec := httptest.NewRecorder()

	h.HandlePDF(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("body does not look like a PDF document")
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, acct.AccountID) {
		t.Errorf("Content-Disposition = %q, want the account id in the filename", cd)
	}
}

func TestHandleXLSX(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Sheet Customer", "sheet@example.com", "sheet")
	acct := fx.CreateAccount(ctx, owner.UserID, "300.00")
	other := fx.CreateAccount(ctx, owner.UserID, "0.00")
	fx.CreateTransaction(ctx, acct.AccountID, other.AccountID, "12.34", "")

	req := httptest.NewRequest("GET", "/accounts/"+acct.AccountID+"/statement.xlsx", nil)
	req = testutil.WithChiURLParam(req, "accountID", acct.AccountID)
	rec := httptest.NewRecorder()

	h.HandleXLSX(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	want := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if ct := rec.Header().Get("Content-Type"); ct != want {
		t.Errorf("Content-Type = %q, want %q", ct, want)
	}
	// xlsx files are zip archives
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("body does not look like an xlsx archive")
	}
}

func TestHandlePDF_UnknownAccount(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/accounts/ACC-DEADBEEF/statement.pdf", nil)
	req = testutil.WithChiURLParam(req, "accountID", "ACC-DEADBEEF")
	rec := httptest.NewRecorder()

	h.HandlePDF(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandlePDF_BadDateParam(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Bad Date", "baddate@example.com", "baddate")
	acct := fx.CreateAccount(ctx, owner.UserID, "10.00")

	req := httptest.NewRequest("GET",
		"/accounts/"+acct.AccountID+"/statement.pdf?from=03-05-2025", nil)
	req = testutil.WithChiURLParam(req, "accountID", acct.AccountID)
	rec := httptest.NewRecorder()

	h.HandlePDF(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
