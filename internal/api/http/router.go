package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/helpdesk-api/internal/api/http/handlers"
	"github.com/quickdesk/helpdesk-api/internal/auth"
	"github.com/quickdesk/helpdesk-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	AgentTickets   *handlers.AgentTicketsHandler
	Categories     *handlers.CategoriesHandler
	AdminUsers     *handlers.AdminUsersHandler
	Account        *handlers.AccountHandler
	Dashboard      *handlers.DashboardHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	requireEndUser := auth.RequireRole(domain.RoleEndUser)
	requireAgent := auth.RequireRole(domain.RoleAgent, domain.RoleAdmin)
	requireAdmin := auth.RequireRole(domain.RoleAdmin)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Auth.Register)
	app.Post("/auth/login", cfg.Auth.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	authed.Get("/categories", cfg.Categories.List)
	authed.Get("/metadata", cfg.Categories.Metadata)

	authed.Get("/profile", cfg.Account.Profile)
	authed.Put("/profile", cfg.Account.UpdateProfile)
	authed.Get("/settings", cfg.Account.Settings)
	authed.Put("/settings", cfg.Account.UpdateSettings)

	authed.Get("/user/dashboard", requireEndUser, cfg.Dashboard.UserDashboard)
	authed.Get("/user/tickets", requireEndUser, cfg.Tickets.ListTickets)

	// shared-tickets precedes the parameterized ticket routes on purpose
	authed.Get("/agent/shared-tickets", requireAgent, cfg.AgentTickets.SharedWithMe)
	authed.Get("/agent/dashboard", requireAgent, cfg.Dashboard.AgentDashboard)
	authed.Get("/agent/tickets", requireAgent, cfg.AgentTickets.ListTickets)
	authed.Post("/agent/tickets", requireAgent, cfg.AgentTickets.CreateTicket)

	authed.Post("/tickets", requireEndUser, cfg.Tickets.CreateTicket)
	authed.Get("/tickets/:id", cfg.Tickets.GetTicket)
	authed.Put("/tickets/:id/status", requireAgent, cfg.AgentTickets.UpdateStatus)
	authed.Put("/tickets/:id/assign", requireAgent, cfg.AgentTickets.Assign)
	authed.Post("/tickets/:id/share", requireAgent, cfg.AgentTickets.Share)
	authed.Post("/tickets/:id/vote", cfg.Tickets.Vote)
	authed.Post("/tickets/:id/replies", cfg.Tickets.AddReply)
	authed.Get("/tickets/:id/replies", cfg.Tickets.ListReplies)

	authed.Get("/categories/all", requireAdmin, cfg.Categories.ListAll)
	authed.Post("/categories", requireAdmin, cfg.Categories.Create)
	authed.Put("/categories/:id", requireAdmin, cfg.Categories.Update)
	authed.Delete("/categories/:id", requireAdmin, cfg.Categories.Delete)

	admin := authed.Group("/admin", requireAdmin)
	admin.Get("/users", cfg.AdminUsers.List)
	admin.Post("/users", cfg.AdminUsers.Create)
	admin.Get("/users/:id", cfg.AdminUsers.Get)
	admin.Put("/users/:id/role", cfg.AdminUsers.UpdateRole)
	admin.Put("/users/:id/status", cfg.AdminUsers.UpdateStatus)
	admin.Delete("/users/:id", cfg.AdminUsers.Delete)
	admin.Get("/notifications", cfg.Notifications.ListPending)
	admin.Put("/notifications/:id/sent", cfg.Notifications.MarkSent)
}
