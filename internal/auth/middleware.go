package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const principalKey = "auth_principal"

// AuthMiddleware validates bearer tokens and binds the authenticated principal.
type AuthMiddleware struct {
	tokens *TokenAuthority
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenAuthority, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle runs once per request. Requests without an Authorization header, or with one
// that fails validation, continue anonymously; route guards decide what that means.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Next()
	}

	principal, err := m.tokens.Validate(header)
	if err != nil {
		fields := []zap.Field{zap.String("path", c.Path()), zap.Error(err)}
		var claimErr *ClaimError
		if errors.As(err, &claimErr) {
			fields = append(fields, zap.String("claim", claimErr.Claim))
		}
		m.logger.Debug("bearer token rejected", fields...)
		return c.Next()
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext returns the authenticated principal name, if any.
func PrincipalFromContext(c *fiber.Ctx) (string, bool) {
	principal, ok := c.Locals(principalKey).(string)
	return principal, ok && principal != ""
}
