package ports

import (
	"context"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// IdentityVerifier checks a username/password pair against a credential source.
type IdentityVerifier interface {
	// Verify returns the matching identity, or domain.ErrInvalidCredentials.
	Verify(ctx context.Context, username, password string) (*domain.Identity, error)
}
