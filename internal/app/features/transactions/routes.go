// internal/app/features/transactions/routes.go
package transactions

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/stats", h.HandleStats)
	r.Get("/high-value", h.HandleHighValue)
	r.Get("/{transactionID}", h.HandleGet)
	r.Put("/{transactionID}/status", h.HandleUpdateStatus)
	return r
}
