// internal/app/features/cards/routes.go
package cards

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{cardID}", h.HandleGet)
	r.Post("/{cardID}/block", h.HandleBlock)
	return r
}
