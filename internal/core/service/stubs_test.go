package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nolivos/client-registry/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Recording notifier
// ---------------------------------------------------------------------------

type notified struct {
	actor string
	kind  domain.NotificationKind
	n     domain.Notification
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notified
}

func (r *recordingNotifier) Notify(_ context.Context, actor string, kind domain.NotificationKind, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notified{actor: actor, kind: kind, n: n})
}

func (r *recordingNotifier) last() notified {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return notified{}
	}
	return r.sent[len(r.sent)-1]
}

// ---------------------------------------------------------------------------
// Identity + session stubs
// ---------------------------------------------------------------------------

type stubVerifier struct {
	creds []domain.Credential
	err   error
}

func (v *stubVerifier) Verify(_ context.Context, username, password string) (*domain.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	for _, c := range v.creds {
		if c.Username == username && c.Password == password {
			return &domain.Identity{Username: c.Username, DisplayName: c.DisplayName}, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

type stubSessionStore struct {
	revoked map[string]time.Time
	err     error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{revoked: make(map[string]time.Time)}
}

func (s *stubSessionStore) Revoke(_ context.Context, id string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[id] = until
	return nil
}

func (s *stubSessionStore) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[id]
	return ok, nil
}

// ---------------------------------------------------------------------------
// In-memory stub client repository
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	clients   []*domain.Client
	createErr error
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *c
	clone.Seq = int64(len(r.clients) + 1)
	clone.ID = domain.FormatClientID(clone.Seq)
	r.clients = append(r.clients, &clone)
	out := clone
	return &out, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) NextSeq(_ context.Context) (int64, error) {
	return int64(len(r.clients) + 1), nil
}

func (r *stubClientRepo) Stats(_ context.Context) (domain.Stats, error) {
	var s domain.Stats
	for _, c := range r.clients {
		s.Record(c)
	}
	return s, nil
}
