// internal/app/features/loans/routes.go
package loans

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{loanID}", h.HandleGet)
	r.Post("/{loanID}/approve", h.HandleApprove)
	return r
}
