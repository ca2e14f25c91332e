package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nolivos/client-registry/internal/core/domain"
	"github.com/nolivos/client-registry/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  loginFailedResponse
// @Router       /auth/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	res, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, loginFailedResponse{
				Error:        "invalid credentials",
				Notification: toNotificationResponse(domain.LoginFailed()),
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:        res.Token,
		ExpiresAt:    res.Session.ExpiresAt,
		User:         toUserResponse(res.Session.Identity),
		Notification: toNotificationResponse(res.Notification),
	})
}

// Logout revokes the current session. Client records are not affected.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  logoutResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	n, err := h.sessions.Logout(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoutResponse{Notification: toNotificationResponse(n)})
}

// Current returns the identity behind the bearer token.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          toUserResponse(session.Identity),
		ExpiresAt:     session.ExpiresAt,
	})
}
