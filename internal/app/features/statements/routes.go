// internal/app/features/statements/routes.go
package statements

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/bankhub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/accounts/{accountID}/statement.pdf", h.HandlePDF)
	r.Get("/accounts/{accountID}/statement.xlsx", h.HandleXLSX)
	return r
}
