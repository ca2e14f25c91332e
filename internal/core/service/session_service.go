package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nolivos/client-registry/internal/core/domain"
	"github.com/nolivos/client-registry/internal/core/ports"
)

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// SessionService implements login, logout and token authentication.
type SessionService struct {
	verifier  ports.IdentityVerifier
	store     ports.SessionStore
	notifier  ports.Notifier
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewSessionService(
	verifier ports.IdentityVerifier,
	store ports.SessionStore,
	notifier ports.Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &SessionService{
		verifier:  verifier,
		store:     store,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Login succeeds iff the verifier knows the exact username/password pair.
func (s *SessionService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, s.loginFailed(ctx, username)
	}

	identity, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, s.loginFailed(ctx, username)
		}
		return nil, fmt.Errorf("login: verify: %w", err)
	}

	session := ports.Session{
		ID:        uuid.NewString(),
		Identity:  *identity,
		ExpiresAt: s.now().Add(s.tokenTTL).UTC().Truncate(time.Second),
	}
	token, err := s.signToken(session)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	n := domain.LoginSucceeded(identity.DisplayName)
	s.notifier.Notify(ctx, identity.Username, domain.KindLoginSucceeded, n)
	s.logger.Info().Str("username", identity.Username).Str("session_id", session.ID).Msg("login succeeded")

	return &ports.LoginResult{Token: token, Session: session, Notification: n}, nil
}

func (s *SessionService) loginFailed(ctx context.Context, username string) error {
	s.notifier.Notify(ctx, username, domain.KindLoginFailed, domain.LoginFailed())
	s.logger.Debug().Str("username", username).Msg("login rejected")
	return domain.ErrInvalidCredentials
}

// Logout revokes the session token. The client registry is left untouched.
func (s *SessionService) Logout(ctx context.Context, session ports.Session) (domain.Notification, error) {
	if err := s.store.Revoke(ctx, session.ID, session.ExpiresAt); err != nil {
		return domain.Notification{}, fmt.Errorf("logout: %w", err)
	}

	n := domain.LoggedOut()
	s.notifier.Notify(ctx, session.Identity.Username, domain.KindLoggedOut, n)
	s.logger.Info().Str("username", session.Identity.Username).Str("session_id", session.ID).Msg("logged out")
	return n, nil
}

// Authenticate validates a bearer token and rejects revoked sessions.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*ports.Session, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidSession
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, domain.ErrInvalidSession
	}

	revoked, err := s.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}

	return &ports.Session{
		ID: claims.ID,
		Identity: domain.Identity{
			Username:    claims.Subject,
			DisplayName: claims.DisplayName,
		},
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

func (s *SessionService) signToken(session ports.Session) (string, error) {
	claims := sessionClaims{
		DisplayName: session.Identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.Identity.Username,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
