// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/bankhub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/top-customers", h.HandleTopCustomers)
	r.Get("/transaction-volume", h.HandleTransactionVolume)
	r.Get("/branch-performance", h.HandleBranchPerformance)
	r.Get("/employee-performance", h.HandleEmployeePerformance)
	r.Get("/expiring-cards", h.HandleExpiringCards)
	r.Get("/customer-segments", h.HandleCustomerSegments)
	return r
}
