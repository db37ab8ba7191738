package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentinel values used in place of errors so the pipeline stays total.
const (
	LabelNoneFound      = "No labels found"
	LabelFetchFailed    = "Failed to get data"
	LabelNothingFound   = "Nothing Found"
	LocationUnavailable = "Location not available."
)

// Job is one submitted image awaiting classification, location enrichment
// and upload. It is owned by exactly one pipeline run and is never persisted.
type Job struct {
	ID          uuid.UUID
	Owner       string // authenticated email, scopes all storage paths
	Image       []byte
	SubmittedAt time.Time
	Location    LocationPermission
	Fix         *Coordinates // device-provided sample, nil when none was taken
}

// LocationPermission captures the client-side permission and provider state
// at the moment of capture.
type LocationPermission struct {
	Granted         bool
	ProviderEnabled bool
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// LabelResult is the terminal outcome of classification. Found is false when
// the result is one of the sentinel labels.
type LabelResult struct {
	Name       string
	Confidence float64
	Found      bool
}

// LocationResult holds the display string for the capture location: a
// reverse-geocoded address, a raw "lat, lon" pair, or the unavailable
// sentinel.
type LocationResult struct {
	Display string
}

// Job terminal states.
const (
	JobCompleted       = "completed"
	JobFailedInput     = "failed_input"
	JobUnauthenticated = "unauthenticated"
	JobFailedUpload    = "failed_upload"
)

// JobOutcome describes how a pipeline run terminated. Advisory carries the
// transient user-facing message, if any.
type JobOutcome struct {
	JobID       uuid.UUID
	State       string
	Label       LabelResult
	Location    LocationResult
	StoragePath string
	Advisory    string
}
