package ports

import (
	"context"
	"time"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// Session is an authenticated bearer token after validation.
type Session struct {
	ID        string
	Identity  domain.Identity
	ExpiresAt time.Time
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token        string
	Session      Session
	Notification domain.Notification
}

// SessionService defines login, logout and token authentication.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, session Session) (domain.Notification, error)
	Authenticate(ctx context.Context, token string) (*Session, error)
}
