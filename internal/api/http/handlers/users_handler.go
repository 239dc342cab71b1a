package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/devnice/usuarios-api/internal/api/dto"
	"github.com/devnice/usuarios-api/internal/auth"
	"github.com/devnice/usuarios-api/internal/service"
	apperrors "github.com/devnice/usuarios-api/pkg/util/errorutil"
)

// UsersHandler exposes the user resource and login.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /usuarios.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Create handles POST /usuarios.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	actor, _ := auth.PrincipalFromContext(c)
	user, err := h.users.Create(c.UserContext(), actor, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Update handles PUT /usuarios.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	actor, _ := auth.PrincipalFromContext(c)
	user, err := h.users.Update(c.UserContext(), actor, service.UpdateUserInput{
		ID:       req.ID,
		Version:  req.Version,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /usuarios/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid user id", map[string]any{"id": c.Params("id")})
	}

	actor, _ := auth.PrincipalFromContext(c)
	if err := h.users.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}

// Login handles POST /usuarios/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	_, token, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{Token: token.Header(), ExpiresAt: token.ExpiresAt})
}

func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}
