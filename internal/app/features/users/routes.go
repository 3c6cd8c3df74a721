// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{userID}", h.HandleGet)
	r.Put("/{userID}", h.HandleUpdate)
	r.Get("/{userID}/profile", h.HandleProfile)
	return r
}
