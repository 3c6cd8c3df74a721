// internal/app/features/accounts/routes.go
package accounts

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{accountID}", h.HandleGet)
	r.Get("/{accountID}/balance", h.HandleBalance)
	r.Put("/{accountID}/balance", h.HandleUpdateBalance)
	r.Post("/{accountID}/close", h.HandleClose)
	return r
}
