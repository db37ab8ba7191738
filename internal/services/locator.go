package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"findit-backend/internal/models"
)

// LocationAdvisory is shown at most once per user, the first time a job runs
// without location permission.
const LocationAdvisory = "Location permission denied. Using default location."

// Locator resolves a best-effort display location for one job. Every branch
// terminates with exactly one LocationResult; permission denial, a disabled
// provider, sample timeout and geocoding failures all degrade to fallback
// strings.
type Locator struct {
	geocoder ReverseGeocoder // nil when reverse geocoding is not configured
	prefs    PreferenceStore
	timeout  time.Duration
}

func NewLocator(geocoder ReverseGeocoder, prefs PreferenceStore, timeout time.Duration) *Locator {
	return &Locator{
		geocoder: geocoder,
		prefs:    prefs,
		timeout:  timeout,
	}
}

// Resolve returns the location result and, when the permission advisory
// fires for the first time, its message.
func (l *Locator) Resolve(ctx context.Context, job *models.Job, provider LocationProvider) (models.LocationResult, string) {
	unavailable := models.LocationResult{Display: models.LocationUnavailable}

	if !job.Location.Granted {
		advisory := ""
		first, err := l.prefs.MarkAdvisoryShown(job.Owner, models.PrefLocationAdvisoryShown)
		if err != nil {
			log.Printf("failed to record location advisory for %s: %v", job.Owner, err)
		} else if first {
			advisory = LocationAdvisory
		}
		return unavailable, advisory
	}

	if !job.Location.ProviderEnabled || provider == nil {
		return unavailable, ""
	}

	// Exactly one sample; the deferred cancel tears the subscription down
	// after the first delivery.
	sampleCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	fix, err := provider.Sample(sampleCtx)
	if err != nil {
		log.Printf("location sample failed for job %s: %v", job.ID, err)
		return unavailable, ""
	}

	raw := fmt.Sprintf("%v, %v", fix.Latitude, fix.Longitude)
	if l.geocoder == nil {
		return models.LocationResult{Display: raw}, ""
	}

	address, err := l.geocoder.ReverseGeocode(ctx, fix.Latitude, fix.Longitude)
	if err != nil {
		log.Printf("reverse geocoding failed for job %s: %v", job.ID, err)
		return models.LocationResult{Display: raw}, ""
	}

	return models.LocationResult{Display: address}, ""
}

// FixProvider serves the single device-supplied fix that arrived with the
// job submission.
type FixProvider struct {
	fix models.Coordinates
}

func NewFixProvider(fix models.Coordinates) *FixProvider {
	return &FixProvider{fix: fix}
}

func (p *FixProvider) Sample(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	return p.fix, nil
}
