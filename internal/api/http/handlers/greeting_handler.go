package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devnice/usuarios-api/internal/api/dto"
	"github.com/devnice/usuarios-api/internal/service"
	apperrors "github.com/devnice/usuarios-api/pkg/util/errorutil"
)

// GreetingHandler serves the hello-world endpoints.
type GreetingHandler struct {
	greetings *service.GreetingService
}

// NewGreetingHandler constructs handler.
func NewGreetingHandler(greetings *service.GreetingService) *GreetingHandler {
	return &GreetingHandler{greetings: greetings}
}

// HelloWorld handles GET /hello-world.
func (h *GreetingHandler) HelloWorld(c *fiber.Ctx) error {
	return c.SendString(h.greetings.HelloWorld(""))
}

// HelloWorldPost handles POST /hello-world/:id?filter=. The JSON body is required but
// only the filter shapes the reply.
func (h *GreetingHandler) HelloWorldPost(c *fiber.Ctx) error {
	var body dto.GreetingUserRequest
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return c.SendString(h.greetings.HelloWorldFiltered(c.Query("filter")))
}

// Welcome handles GET /api/hello?name=.
func (h *GreetingHandler) Welcome(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return apperrors.NewValidationError("name is required", map[string]any{"name": "is required"})
	}
	return c.SendString(h.greetings.Welcome(name))
}
