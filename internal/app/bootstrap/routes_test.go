package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/system/auth"
	"github.com/dalemusser/bankhub/internal/testutil"
)

func TestBuildHandler_Routes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	auth.InitSessionStore("")

	deps := DBDeps{
		BankHubMongoClient:   db.Client(),
		BankHubMongoDatabase: db,
	}

	handler, err := BuildHandler(&config.CoreConfig{}, AppConfig{}, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	// health is open
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health: status = %d, want 200", rec.Code)
	}

	// entity reads are open
	req = httptest.NewRequest("GET", "/users", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /users: status = %d, want 200", rec.Code)
	}

	// reports need a session
	req = httptest.NewRequest("GET", "/reports/top-customers", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /reports/top-customers: status = %d, want 401", rec.Code)
	}

	// statements need a session too
	req = httptest.NewRequest("GET", "/statements/accounts/ACC-00000001/statement.pdf", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET statement.pdf: status = %d, want 401", rec.Code)
	}
}
