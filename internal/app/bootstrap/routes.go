// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountsfeature "github.com/dalemusser/bankhub/internal/app/features/accounts"
	cardsfeature "github.com/dalemusser/bankhub/internal/app/features/cards"
	employeesfeature "github.com/dalemusser/bankhub/internal/app/features/employees"
	healthfeature "github.com/dalemusser/bankhub/internal/app/features/health"
	loansfeature "github.com/dalemusser/bankhub/internal/app/features/loans"
	loginfeature "github.com/dalemusser/bankhub/internal/app/features/login"
	reportsfeature "github.com/dalemusser/bankhub/internal/app/features/reports"
	statementsfeature "github.com/dalemusser/bankhub/internal/app/features/statements"
	transactionsfeature "github.com/dalemusser/bankhub/internal/app/features/transactions"
	usersfeature "github.com/dalemusser/bankhub/internal/app/features/users"
	"github.com/dalemusser/bankhub/internal/app/pipeline"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The entity routes are open JSON APIs;
// the reporting and statement routes require a signed-in session.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.BankHubMongoDatabase
	p := pipeline.New(db, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.BankHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(userstore.New(db), logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	// Entity endpoints
	usersHandler := usersfeature.NewHandler(db, p, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	accountsHandler := accountsfeature.NewHandler(db, p, logger)
	r.Mount("/accounts", accountsfeature.Routes(accountsHandler))

	transactionsHandler := transactionsfeature.NewHandler(db, p, logger)
	r.Mount("/transactions", transactionsfeature.Routes(transactionsHandler))

	loansHandler := loansfeature.NewHandler(db, p, logger)
	r.Mount("/loans", loansfeature.Routes(loansHandler))

	cardsHandler := cardsfeature.NewHandler(db, p, logger)
	r.Mount("/cards", cardsfeature.Routes(cardsHandler))

	employeesHandler := employeesfeature.NewHandler(db, p, logger)
	r.Mount("/employees", employeesfeature.Routes(employeesHandler))

	// Reports and statement exports (session required)
	reportsHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler))

	statementsHandler := statementsfeature.NewHandler(db, logger)
	r.Mount("/statements", statementsfeature.Routes(statementsHandler))

	return r, nil
}
