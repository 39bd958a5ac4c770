package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sabajiqurashvili/loan-api/internal/api/http/handlers"
	"github.com/sabajiqurashvili/loan-api/internal/auth"
	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Loans          *handlers.LoansHandler
	Accountant     *handlers.AccountantHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	loans := protected.Group("/users/loans", auth.RequireRole(domain.RoleUser))
	loans.Post("", cfg.Loans.Request)
	loans.Get("/my", cfg.Loans.ListMine)
	loans.Put("/:loanId", cfg.Loans.Update)
	loans.Delete("/:loanId", cfg.Loans.Delete)

	protected.Get("/users/:id", cfg.Users.GetByID)

	accountant := protected.Group("/accountant", auth.RequireRole(domain.RoleAccountant))
	accountant.Get("/users/:userId/loans", cfg.Accountant.SeeLoans)
	accountant.Put("/users/:userId/block", cfg.Accountant.BlockUser)
	accountant.Put("/loans/:loanId", cfg.Accountant.UpdateStatus)
	accountant.Delete("/loans/:loanId", cfg.Accountant.DeleteLoan)

	admin := protected.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Put("/users/:userId/promote", cfg.Admin.Promote)
}
