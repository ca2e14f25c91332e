package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nolivos/client-registry/internal/core/domain"
	"github.com/nolivos/client-registry/internal/core/ports"
)

type stubSessionService struct {
	loginFn  func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, session ports.Session) (domain.Notification, error)
}

func (s *stubSessionService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessionService) Logout(ctx context.Context, session ports.Session) (domain.Notification, error) {
	return s.logoutFn(ctx, session)
}

func (s *stubSessionService) Authenticate(context.Context, string) (*ports.Session, error) {
	return nil, domain.ErrInvalidSession
}

type stubClientService struct {
	createFn func(ctx context.Context, in ports.CreateClientInput) (*ports.CreateClientResult, error)
	searchFn func(ctx context.Context, actor, query string) (*ports.SearchResult, error)
	clients  []*domain.Client
	stats    domain.Stats
	err      error
}

func (s *stubClientService) Create(ctx context.Context, in ports.CreateClientInput) (*ports.CreateClientResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubClientService) Draft(context.Context) (domain.Client, error) {
	if s.err != nil {
		return domain.Client{}, s.err
	}
	return domain.NewDraft(int64(len(s.clients) + 1)), nil
}

func (s *stubClientService) List(context.Context) ([]*domain.Client, error) {
	return s.clients, s.err
}

func (s *stubClientService) Get(_ context.Context, id string) (*domain.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (s *stubClientService) Search(ctx context.Context, actor, query string) (*ports.SearchResult, error) {
	return s.searchFn(ctx, actor, query)
}

func (s *stubClientService) Stats(context.Context) (domain.Stats, error) {
	return s.stats, s.err
}

type stubActivityRepo struct {
	entries   []*domain.Activity
	lastLimit int
}

func (s *stubActivityRepo) Insert(context.Context, *domain.Activity) error { return nil }

func (s *stubActivityRepo) Recent(_ context.Context, limit int) ([]*domain.Activity, error) {
	s.lastLimit = limit
	if limit < len(s.entries) {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}

var testSession = ports.Session{
	ID:        "sess-1",
	Identity:  domain.Identity{Username: "hjnolivos", DisplayName: "H. J. Nolivos"},
	ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
}

func sampleClient(id, first, last string, status domain.ClientStatus) *domain.Client {
	return &domain.Client{
		ID:         id,
		FirstName:  first,
		LastName:   last,
		Email:      strings.ToLower(first) + "@example.com",
		Phone:      "555-0100",
		State:      "FL",
		Age:        40,
		DOB:        "1985-04-12",
		Status:     status,
		CaseStatus: "intake",
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// newContext builds an echo context with the validator installed and, when
// authed is true, the session the Auth middleware would have set.
func newContext(method, target, body string, authed bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if authed {
		c.Set("session", testSession)
	}
	return c, rec
}
