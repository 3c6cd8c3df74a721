package login_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/features/login"
	"github.com/dalemusser/bankhub/internal/app/pipeline"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/app/system/auth"
	"github.com/dalemusser/bankhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*login.Handler, *pipeline.Pipeline) {
	t.Helper()
	auth.InitSessionStore("")
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return login.NewHandler(userstore.New(db), logger), pipeline.New(db, logger)
}

func createLoginUser(t *testing.T, p *pipeline.Pipeline, username, password string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res := p.CreateUser(ctx, pipeline.UserRequest{
		FullName: "Alice Smith",
		Email:    username + "@example.com",
		Phone:    "+12025550100",
		Address: pipeline.AddressRequest{
			Country: "Netherlands", City: "Amsterdam", Street: "Main Street 5",
		},
		Role:     "customer",
		Username: username,
		Password: password,
	})
	if !res.OK {
		t.Fatalf("could not create login user: %s", res.Message)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	h, p := newTestHandler(t)
	createLoginUser(t, p, "alice", "s3cret-pass")

	body := strings.NewReader(`{"username":"alice","password":"s3cret-pass"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	rec := httptest.NewRecorder()

	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.FullName != "Alice Smith" {
		t.Errorf("full_name = %q, want Alice Smith", resp.FullName)
	}
	if resp.Role != "customer" {
		t.Errorf("role = %q, want customer", resp.Role)
	}

	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on successful login")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h, p := newTestHandler(t)
	createLoginUser(t, p, "bob", "right-password")

	body := strings.NewReader(`{"username":"bob","password":"wrong-password"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	rec := httptest.NewRecorder()

	h.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleLogin_UnknownUsername(t *testing.T) {
	h, _ := newTestHandler(t)

	body := strings.NewReader(`{"username":"nobody","password":"whatever"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	rec := httptest.NewRecorder()

	h.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleMe_NotSignedIn(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	rec := httptest.NewRecorder()

	h.HandleMe(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
