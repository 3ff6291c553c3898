package domain

import (
	"errors"
	"time"
)

// Roles recognised by the platform. The set is closed: adding a role
// requires updating the permission matrix in lockstep.
const (
	RoleNatural       = "natural"
	RoleGobierno      = "gobierno"
	RoleAdmin         = "admin"
	RoleMantenimiento = "mantenimiento"
)

var ErrMissingCedula = errors.New("cedula is required")
var ErrInvalidCedula = errors.New("cedula has no numeric part")
var ErrMissingFields = errors.New("missing required fields")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// Registry lookup outcomes. Both collapse to "no data" toward the client;
// they stay distinct internally for logging and metrics.
var ErrPersonNotFound = errors.New("person not found in registry")
var ErrRegistryUnavailable = errors.New("registry unavailable")

// ValidRole reports whether r is one of the recognised role tags.
func ValidRole(r string) bool {
	switch r {
	case RoleNatural, RoleGobierno, RoleAdmin, RoleMantenimiento:
		return true
	}
	return false
}

// User models a registered citizen or operator account.
type User struct {
	ID           string    `json:"id"`
	Cedula       string    `json:"cedula"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
