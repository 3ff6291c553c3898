package ports

import (
	"context"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
)

// CedulaCheckResult is the outcome of a pre-registration cedula lookup.
// Exactly one of User (account already exists) or Person (registry prefill
// data) is set; both nil means no data was found anywhere.
type CedulaCheckResult struct {
	Exists bool
	User   *domain.User
	Person *RegistryPerson
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Cedula   string
	Name     string
	Surname  string
	Password string
}

// AuthResult is returned by Register and Login: a signed session token,
// the account (without the password hash on the wire) and the permission
// snapshot for its role.
type AuthResult struct {
	Token       string
	User        *domain.User
	Permissions domain.ModulePermissions
}

// IdentityService owns cedula verification, registration and login.
type IdentityService interface {
	CheckCedula(ctx context.Context, cedula string) (*CedulaCheckResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, cedula, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, domain.ModulePermissions, error)
}
