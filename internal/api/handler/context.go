package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nolivos/client-registry/internal/core/ports"
)

// ctxSession extracts the session injected by the Auth middleware. A missing
// session means the route was registered without the middleware; reject with
// 401 rather than act anonymously.
func ctxSession(c echo.Context) (ports.Session, error) {
	session, ok := c.Get("session").(ports.Session)
	if !ok || session.Identity.Username == "" {
		return ports.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
