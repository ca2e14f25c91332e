package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nolivos/client-registry/internal/core/domain"
	"github.com/nolivos/client-registry/internal/core/ports"
)

// Auth validates the bearer token against the session service and injects
// the session into context.
func Auth(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			session, err := sessions.Authenticate(c.Request().Context(), parts[1])
			switch {
			case errors.Is(err, domain.ErrSessionRevoked):
				return echo.NewHTTPError(http.StatusUnauthorized, "session has ended")
			case errors.Is(err, domain.ErrInvalidSession):
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			case err != nil:
				return err
			}

			c.Set("session", *session)
			c.Set("username", session.Identity.Username)

			return next(c)
		}
	}
}
