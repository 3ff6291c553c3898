package ports

import (
	"context"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
)

// RegistryPerson is the identity data the national registry returns for a
// cedula: just the name parts used to prefill registration.
type RegistryPerson struct {
	Name    string
	Surname string
}

// RegistryClient looks up a cedula in the external national registry.
//
// Lookup returns domain.ErrPersonNotFound when the registry answers but has
// no record (or answers with something unusable), and
// domain.ErrRegistryUnavailable on transport failures or timeouts. Callers
// degrade both to "no data"; the distinction exists for observability.
type RegistryClient interface {
	Lookup(ctx context.Context, cedula domain.Cedula) (*RegistryPerson, error)
}
