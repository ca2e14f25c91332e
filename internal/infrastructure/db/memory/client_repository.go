// Package memory holds the process-local backends: the client registry, the
// session revocation list and the activity log. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// ClientRepository is an ordered, append-only registry guarded by a RWMutex.
// Stats are maintained incrementally on every insert.
type ClientRepository struct {
	mu      sync.RWMutex
	clients []domain.Client
	byID    map[string]int
	stats   domain.Stats
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{byID: make(map[string]int)}
}

func (r *ClientRepository) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := *c
	rec.Seq = int64(len(r.clients) + 1)
	rec.ID = domain.FormatClientID(rec.Seq)

	r.byID[rec.ID] = len(r.clients)
	r.clients = append(r.clients, rec)
	r.stats.Record(&rec)

	return &rec, nil
}

func (r *ClientRepository) List(_ context.Context) ([]*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Client, len(r.clients))
	for i := range r.clients {
		c := r.clients[i]
		out[i] = &c
	}
	return out, nil
}

func (r *ClientRepository) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	c := r.clients[idx]
	return &c, nil
}

func (r *ClientRepository) NextSeq(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.clients) + 1), nil
}

func (r *ClientRepository) Stats(_ context.Context) (domain.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats, nil
}
