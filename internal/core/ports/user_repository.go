package ports

import (
	"context"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
)

// UserRepository defines the persistence interface for accounts. The store
// is the single authority for cedula uniqueness: Create must fail with
// domain.ErrUserExists on a duplicate, never overwrite.
type UserRepository interface {
	FindByCedula(ctx context.Context, cedula string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
