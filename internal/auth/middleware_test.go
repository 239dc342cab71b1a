package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/devnice/usuarios-api/pkg/util/errorutil"
)

func newGuardedApp(authority *TokenAuthority) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
		},
	})
	app.Use(NewAuthMiddleware(authority, nil).Handle)

	app.Get("/public", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(principal)
	})
	app.Get("/private", RequireAuthenticated(), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.SendString(principal)
	})

	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authorization string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC))
	authority := newTestAuthority(t, WithClock(clock))
	app := newGuardedApp(authority)

	token, err := authority.Issue("alice")
	require.NoError(t, err)

	t.Run("NoHeaderIsAnonymous", func(t *testing.T) {
		status, body := doRequest(t, app, "/public", "")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "anonymous", body)
	})

	t.Run("ValidTokenBindsPrincipal", func(t *testing.T) {
		status, body := doRequest(t, app, "/public", token.Header())

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "alice", body)
	})

	t.Run("InvalidTokenIsAnonymous", func(t *testing.T) {
		status, body := doRequest(t, app, "/public", "Bearer garbage")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "anonymous", body)
	})

	t.Run("GuardRejectsAnonymous", func(t *testing.T) {
		status, body := doRequest(t, app, "/private", "")

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, apperrors.CodeUnauthorized, body)
	})

	t.Run("GuardRejectsMissingPrefix", func(t *testing.T) {
		status, _ := doRequest(t, app, "/private", token.Raw)

		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("GuardAdmitsValidToken", func(t *testing.T) {
		status, body := doRequest(t, app, "/private", token.Header())

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "alice", body)
	})
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC))
	authority := newTestAuthority(t, WithClock(clock))
	app := newGuardedApp(authority)

	token, err := authority.Issue("alice")
	require.NoError(t, err)

	clock.Advance(13 * time.Hour)

	status, _ := doRequest(t, app, "/private", token.Header())
	assert.Equal(t, http.StatusUnauthorized, status)
}
