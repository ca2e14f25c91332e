package ports

import (
	"context"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// CreateClientInput carries the fields of the create form.
type CreateClientInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	State      string
	Age        int
	DOB        string
	Status     string
	CaseStatus string
	MoreInfo   string
	// Actor is the username of the session creating the record.
	Actor string
}

// CreateClientResult is returned by Create.
type CreateClientResult struct {
	Client *domain.Client
	// Next is the fresh form pre-populated with the following identifier.
	Next         domain.Client
	Stats        domain.Stats
	Notification domain.Notification
}

// SearchResult holds the matching records in registry order. Notification is
// set only when nothing matched.
type SearchResult struct {
	Clients      []*domain.Client
	Notification *domain.Notification
}

// ClientService defines the registry use cases.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*CreateClientResult, error)
	Draft(ctx context.Context) (domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Search(ctx context.Context, actor, query string) (*SearchResult, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
