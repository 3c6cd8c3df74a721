// Package login implements session sign-in and sign-out for the JSON API.
package login

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/app/system/auth"
	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// HandleLogin verifies the username/password pair and starts a session.
// Unknown usernames and wrong passwords both come back as the same 401 so
// callers cannot probe which usernames exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("login: lookup failed", zap.Error(err))
		}
		httpjson.Error(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	su := auth.SessionUser{ID: user.UserID, FullName: user.FullName, Role: user.Role}
	if err := auth.SignIn(w, r, su); err != nil {
		h.Log.Error("login: session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not start session")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", user.UserID))
	httpjson.Write(w, http.StatusOK, loginResponse{
		UserID:   user.UserID,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

// HandleLogout clears the session cookie. Logging out while not signed in
// is not an error.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("logout: session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not end session")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// HandleMe reports the signed-in user, or 401 when there is no session.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	httpjson.Write(w, http.StatusOK, loginResponse{
		UserID:   u.ID,
		FullName: u.FullName,
		Role:     u.Role,
	})
}
