package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/expensedesk/reimbursement-service/internal/api/http/handlers"
	"github.com/expensedesk/reimbursement-service/internal/auth"
	"github.com/expensedesk/reimbursement-service/internal/domain"
	"github.com/expensedesk/reimbursement-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Reimbursements *handlers.ReimbursementsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if reg := cfg.Metrics.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	authenticated := cfg.AuthMiddleware.Handle
	loggedIn := auth.RequireAuthenticated()

	app.Post("/auth", cfg.Auth.Login)
	app.Delete("/auth", authenticated, loggedIn, cfg.Auth.Logout)

	users := app.Group("/users", authenticated, auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Get("/search", cfg.Users.Search)
	users.Get("/role/:roleId", cfg.Users.ByRole)
	users.Get("/:id", cfg.Users.Get)
	users.Post("/", cfg.Users.Create)
	users.Put("/", cfg.Users.Update)
	users.Delete("/", cfg.Users.Delete)

	managerOnly := auth.RequireRole(domain.RoleFinancialManager)

	reimbs := app.Group("/reimbursements", authenticated)
	reimbs.Get("/", managerOnly, cfg.Reimbursements.List)
	reimbs.Get("/search", managerOnly, cfg.Reimbursements.Search)
	reimbs.Get("/author", loggedIn, cfg.Reimbursements.ByAuthor)
	reimbs.Patch("/resolve", managerOnly, cfg.Reimbursements.Resolve)
	reimbs.Get("/:id", loggedIn, cfg.Reimbursements.Get)
	reimbs.Post("/", loggedIn, cfg.Reimbursements.Create)
	reimbs.Put("/", loggedIn, cfg.Reimbursements.Update)
}
