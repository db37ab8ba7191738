package services

import (
	"bytes"
	"context"
	"image"
	"log"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"findit-backend/internal/models"
	"findit-backend/internal/supabase"
)

// Advisory messages surfaced to the user on job-level aborts.
const (
	AdvisoryImageLoadFailed  = "Failed to load image data."
	AdvisoryNotAuthenticated = "User not authenticated"
	AdvisoryUploadFailed     = "Failed to save image."
)

const notificationTitle = "FindIt Result"

// PipelineService runs the capture-classify-locate-upload pipeline. One job
// is owned by one run; stages execute strictly in order, sub-stage failures
// degrade to sentinels, and every run ends after at most one upload attempt.
type PipelineService struct {
	classifier *Classifier
	locator    *Locator
	notifier   *Notifier
	store      ObjectStore
	events     EventPublisher // optional
}

func NewPipelineService(
	classifier *Classifier,
	locator *Locator,
	notifier *Notifier,
	store ObjectStore,
	events EventPublisher,
) *PipelineService {
	return &PipelineService{
		classifier: classifier,
		locator:    locator,
		notifier:   notifier,
		store:      store,
		events:     events,
	}
}

// Submit spawns a worker for the job and returns immediately. There is no
// queue and no retry: the worker runs the job to a terminal state once.
func (s *PipelineService) Submit(job *models.Job) {
	go func() {
		outcome := s.Run(context.Background(), job)
		log.Printf("job %s terminated: %s", job.ID, outcome.State)
	}()
}

// Run executes one job to termination and reports how it ended.
func (s *PipelineService) Run(ctx context.Context, job *models.Job) *models.JobOutcome {
	outcome := &models.JobOutcome{JobID: job.ID}

	// Authentication is checked before any stage so an unauthenticated job
	// fails closed without wasted model or location work.
	if job.Owner == "" {
		outcome.State = models.JobUnauthenticated
		outcome.Advisory = AdvisoryNotAuthenticated
		return outcome
	}

	if !ValidImage(job.Image) {
		outcome.State = models.JobFailedInput
		outcome.Advisory = AdvisoryImageLoadFailed
		s.publish(job, "job_failed", supabase.JobFailedPayload(job.ID, "image load failed"))
		return outcome
	}

	s.publish(job, "job_started", supabase.JobStartedPayload(job.ID))

	outcome.Label = s.classifier.Classify(ctx, job.Image)

	// The single classification notification goes out before the upload
	// attempt; the upload itself stays silent.
	if err := s.notifier.Notify(ctx, job.Owner, notificationTitle, notificationText(outcome.Label)); err != nil {
		log.Printf("failed to notify %s for job %s: %v", job.Owner, job.ID, err)
	}
	s.publish(job, "classification_completed", supabase.ClassificationCompletedPayload(job.ID, outcome.Label.Name))

	var provider LocationProvider
	if job.Fix != nil {
		provider = NewFixProvider(*job.Fix)
	}
	location, advisory := s.locator.Resolve(ctx, job, provider)
	outcome.Location = location
	outcome.Advisory = advisory

	storagePath, err := s.store.Put(ctx, job.Owner, outcome.Label.Name, location.Display, job.Image)
	if err != nil {
		log.Printf("upload failed for job %s: %v", job.ID, err)
		outcome.State = models.JobFailedUpload
		outcome.Advisory = AdvisoryUploadFailed
		s.publish(job, "job_failed", supabase.JobFailedPayload(job.ID, "upload failed"))
		return outcome
	}

	outcome.State = models.JobCompleted
	outcome.StoragePath = storagePath
	s.publish(job, "upload_completed", supabase.UploadCompletedPayload(job.ID, storagePath))
	return outcome
}

func (s *PipelineService) publish(job *models.Job, event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUserEvent(job.Owner, event, payload); err != nil {
		log.Printf("failed to publish %s for job %s: %v", event, job.ID, err)
	}
}

func notificationText(result models.LabelResult) string {
	switch result.Name {
	case models.LabelNoneFound:
		return "No labels found."
	case models.LabelFetchFailed:
		return "Failed to get data."
	default:
		return "Found object: " + result.Name
	}
}

// ValidImage reports whether the bytes decode as a supported image format
// (jpeg, png or webp).
func ValidImage(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
