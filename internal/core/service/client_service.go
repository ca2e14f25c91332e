package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nolivos/client-registry/internal/core/domain"
	"github.com/nolivos/client-registry/internal/core/ports"
)

type ClientService struct {
	repo     ports.ClientRepository
	notifier ports.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewClientService(repo ports.ClientRepository, notifier ports.Notifier, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// Create appends a record to the registry and returns it together with the
// next empty form, the updated counters and the confirmation notification.
func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*ports.CreateClientResult, error) {
	status := domain.ClientStatus(input.Status)
	if status == "" {
		status = domain.ClientActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("create client: %w: unknown status %q", domain.ErrInvalidClient, input.Status)
	}

	client := &domain.Client{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		State:      input.State,
		Age:        input.Age,
		DOB:        input.DOB,
		Status:     status,
		CaseStatus: input.CaseStatus,
		MoreInfo:   input.MoreInfo,
		CreatedAt:  s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("create client: stats: %w", err)
	}

	n := domain.ClientCreated(created)
	s.notifier.Notify(ctx, input.Actor, domain.KindClientCreated, n)
	s.logger.Info().Str("client_id", created.ID).Str("status", string(created.Status)).Str("actor", input.Actor).Msg("client created")

	return &ports.CreateClientResult{
		Client:       created,
		Next:         domain.NewDraft(created.Seq + 1),
		Stats:        stats,
		Notification: n,
	}, nil
}

// Draft returns the empty create form carrying the next identifier.
func (s *ClientService) Draft(ctx context.Context) (domain.Client, error) {
	seq, err := s.repo.NextSeq(ctx)
	if err != nil {
		return domain.Client{}, fmt.Errorf("draft: %w", err)
	}
	return domain.NewDraft(seq), nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// Search is a linear, case-insensitive substring scan over full name and email.
func (s *ClientService) Search(ctx context.Context, actor, query string) (*ports.SearchResult, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}

	matches := make([]*domain.Client, 0)
	for _, c := range clients {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}

	s.logger.Debug().Str("query", query).Int("matches", len(matches)).Msg("client search")

	result := &ports.SearchResult{Clients: matches}
	if len(matches) == 0 {
		n := domain.SearchEmpty()
		s.notifier.Notify(ctx, actor, domain.KindSearchEmpty, n)
		result.Notification = &n
	}
	return result, nil
}

func (s *ClientService) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}
