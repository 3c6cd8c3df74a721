// internal/app/features/employees/routes.go
package employees

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{employeeID}", h.HandleGet)
	r.Put("/{employeeID}", h.HandleUpdate)
	return r
}
