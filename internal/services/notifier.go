package services

import (
	"context"
	"log"
	"math/rand"

	"findit-backend/internal/models"
	"findit-backend/internal/push"
)

// Notifier sends one-shot result notifications, gated by the owner's
// notifications_enabled preference. Deliveries are never deduplicated; each
// carries a fresh random id.
type Notifier struct {
	pusher Pusher // nil disables delivery entirely
	prefs  PreferenceStore
}

func NewNotifier(pusher Pusher, prefs PreferenceStore) *Notifier {
	return &Notifier{
		pusher: pusher,
		prefs:  prefs,
	}
}

func (n *Notifier) Notify(ctx context.Context, owner, title, text string) error {
	enabled, err := n.prefs.GetPreference(owner, models.PrefNotificationsEnabled, true)
	if err != nil {
		log.Printf("failed to read notification preference for %s: %v", owner, err)
	}
	if !enabled {
		// Disabled switch is a silent no-op, not an error.
		return nil
	}

	if n.pusher == nil {
		return nil
	}

	return n.pusher.Send(ctx, push.Notification{
		ID:    rand.Intn(100000),
		Topic: owner,
		Title: title,
		Body:  text,
	})
}
