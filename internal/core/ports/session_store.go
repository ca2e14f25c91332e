package ports

import (
	"context"
	"time"
)

// SessionStore remembers revoked session tokens until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
