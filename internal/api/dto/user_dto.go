package dto

import (
	"time"

	"github.com/devnice/usuarios-api/internal/domain"
)

// UserCreateRequest payload for POST /usuarios.
type UserCreateRequest struct {
	Name     string `json:"nome" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"senha" validate:"required,maxbytes=72"`
	Phone    string `json:"telefone" validate:"omitempty,max=15"`
}

// UserUpdateRequest payload for PUT /usuarios. An empty senha keeps the current password.
type UserUpdateRequest struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Version  int    `json:"version" validate:"gte=0"`
	Name     string `json:"nome" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"senha" validate:"omitempty,maxbytes=72"`
	Phone    string `json:"telefone" validate:"omitempty,max=15"`
}

// LoginRequest payload for POST /usuarios/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// TokenResponse is returned on successful login. Token already carries the "Bearer " prefix.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of a user; the password hash is never exposed.
type UserResponse struct {
	ID        int64     `json:"id"`
	Version   int       `json:"version"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Version:   user.Version,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses maps a list of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
