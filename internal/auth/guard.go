package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/devnice/usuarios-api/pkg/util/errorutil"
)

// RequireAuthenticated rejects requests that carry no valid bearer token.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
