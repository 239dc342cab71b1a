package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devnice/usuarios-api/internal/api/http/handlers"
	"github.com/devnice/usuarios-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Greetings      *handlers.GreetingHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Listing, sign-up, login and the greeting endpoints
// are public; changing or deleting users requires a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	users := app.Group("/usuarios")
	users.Get("", cfg.Users.List)
	users.Post("", cfg.Users.Create)
	users.Post("/login", cfg.Users.Login)
	users.Put("", auth.RequireAuthenticated(), cfg.Users.Update)
	users.Delete("/:id", auth.RequireAuthenticated(), cfg.Users.Delete)

	app.Get("/hello-world", cfg.Greetings.HelloWorld)
	app.Post("/hello-world/:id", cfg.Greetings.HelloWorldPost)
	app.Get("/api/hello", cfg.Greetings.Welcome)
}
