package services

import (
	"context"

	"findit-backend/internal/models"
	"findit-backend/internal/push"
	"findit-backend/internal/vision"
)

// Labeler is the on-device/remote label model capability consumed by the
// classifier.
type Labeler interface {
	AnnotateLabels(ctx context.Context, image []byte) ([]vision.Label, error)
}

// ReverseGeocoder resolves coordinates to a formatted address line.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// Pusher delivers one notification message.
type Pusher interface {
	Send(ctx context.Context, n push.Notification) error
}

// LocationProvider yields a single coordinate sample. Implementations must
// honor context cancellation; the locator tears the sample context down
// right after the first delivery.
type LocationProvider interface {
	Sample(ctx context.Context) (models.Coordinates, error)
}

// PreferenceStore is the injected per-user settings state read by the
// notifier and written by the locator's show-once advisory gate.
type PreferenceStore interface {
	GetPreference(email, key string, defaultValue bool) (bool, error)
	MarkAdvisoryShown(email, key string) (bool, error)
}

// ObjectStore persists the final labeled image under a per-owner key.
type ObjectStore interface {
	Put(ctx context.Context, owner, name, location string, image []byte) (string, error)
}

// EventPublisher pushes job progress events to the owner's realtime channel.
type EventPublisher interface {
	PublishUserEvent(owner string, event string, payload map[string]interface{}) error
}
