package handler

import (
	"time"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
)

// --- Request types ---

type checkCedulaRequest struct {
	Cedula string `json:"cedula" validate:"required"`
}

type registerRequest struct {
	Cedula   string `json:"cedula"   validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"  validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Cedula   string `json:"cedula"   validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

// personData is the registry prefill payload on check-cedula.
type personData struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type checkCedulaResponse struct {
	Exists  bool        `json:"exists"`
	Message string      `json:"message"`
	User    *personData `json:"user,omitempty"`
	Data    *personData `json:"data"`
}

// userResponse is the account summary attached to sessions. The password
// hash never appears here.
type userResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Surname     string                   `json:"surname"`
	Cedula      string                   `json:"cedula"`
	Role        string                   `json:"role"`
	CreatedAt   time.Time                `json:"created_at"`
	Permissions domain.ModulePermissions `json:"permissions"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type meResponse struct {
	User userResponse `json:"user"`
}

func toUserResponse(u *domain.User, perms domain.ModulePermissions) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Surname:     u.Surname,
		Cedula:      u.Cedula,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		Permissions: perms,
	}
}
