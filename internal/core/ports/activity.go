package ports

import (
	"context"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// Notifier receives every notification the services hand back to users.
type Notifier interface {
	Notify(ctx context.Context, actor string, kind domain.NotificationKind, n domain.Notification)
}

// ActivityRepository persists the audit trail of notifications.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Activity, error)
}
