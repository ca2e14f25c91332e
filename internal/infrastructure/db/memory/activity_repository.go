package memory

import (
	"context"
	"sync"

	"github.com/nolivos/client-registry/internal/core/domain"
)

const defaultActivityCapacity = 1000

// ActivityRepository is a bounded ring of the most recent activity entries.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []domain.Activity
	next    int
	full    bool
}

func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = defaultActivityCapacity
	}
	return &ActivityRepository{entries: make([]domain.Activity, capacity)}
}

func (r *ActivityRepository) Insert(_ context.Context, a *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = *a
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

func (r *ActivityRepository) Recent(_ context.Context, limit int) ([]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := r.next
	if r.full {
		size = len(r.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]*domain.Activity, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		a := r.entries[idx]
		out = append(out, &a)
	}
	return out, nil
}
