package ports

import (
	"context"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// ClientRepository is the ordered, append-only client registry.
type ClientRepository interface {
	// Create appends c, assigning ID and Seq as the registry length + 1.
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	// List returns every record in insertion order.
	List(ctx context.Context) ([]*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// NextSeq is the sequence number the next Create will assign.
	NextSeq(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
