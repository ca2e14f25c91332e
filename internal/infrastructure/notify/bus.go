// Package notify fans user notifications out to in-process subscribers over
// an EventBus topic.
package notify

import (
	"context"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/rs/zerolog"

	"github.com/nolivos/client-registry/internal/core/domain"
)

// TopicNotification is the bus topic every notification is published on.
const TopicNotification = "notification:emitted"

// Event is the payload subscribers receive.
type Event struct {
	Actor        string
	Kind         domain.NotificationKind
	Notification domain.Notification
	At           time.Time
}

// Activity converts the event into an audit entry.
func (e Event) Activity() domain.Activity {
	return domain.Activity{
		Kind:        e.Kind,
		Actor:       e.Actor,
		Title:       e.Notification.Title,
		Description: e.Notification.Description,
		Variant:     e.Notification.Variant,
		OccurredAt:  e.At,
	}
}

// Bus implements ports.Notifier. Publishing is synchronous: subscribers run
// on the caller's goroutine and must not block.
type Bus struct {
	bus evbus.Bus
	now func() time.Time
}

func NewBus() *Bus {
	return &Bus{bus: evbus.New(), now: time.Now}
}

func (b *Bus) Notify(_ context.Context, actor string, kind domain.NotificationKind, n domain.Notification) {
	b.bus.Publish(TopicNotification, Event{
		Actor:        actor,
		Kind:         kind,
		Notification: n,
		At:           b.now().UTC(),
	})
}

// Subscribe registers fn for every published notification.
func (b *Bus) Subscribe(fn func(Event)) error {
	return b.bus.Subscribe(TopicNotification, fn)
}

// LogSink writes each notification as a structured log line. Destructive
// notifications are logged at warn level.
func LogSink(log zerolog.Logger) func(Event) {
	return func(ev Event) {
		e := log.Info()
		if ev.Notification.Variant == domain.VariantDestructive {
			e = log.Warn()
		}
		e.Str("actor", ev.Actor).
			Str("kind", string(ev.Kind)).
			Str("title", ev.Notification.Title).
			Msg(ev.Notification.Description)
	}
}
