package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient publishes per-user job progress events. The mobile client
// subscribes to its own channel to track a submitted search.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; database writes
	// trigger Realtime automatically and this hook exists for an explicit
	// REST publish once the client grows one.
	return nil
}

func (r *RealtimeClient) PublishUserEvent(owner string, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s", owner)
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func JobStartedPayload(jobID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"job_id": jobID.String(),
		"status": "processing",
	}
}

func ClassificationCompletedPayload(jobID uuid.UUID, label string) map[string]interface{} {
	return map[string]interface{}{
		"job_id": jobID.String(),
		"status": "classified",
		"label":  label,
	}
}

func UploadCompletedPayload(jobID uuid.UUID, storagePath string) map[string]interface{} {
	return map[string]interface{}{
		"job_id":       jobID.String(),
		"status":       "completed",
		"storage_path": storagePath,
	}
}

func JobFailedPayload(jobID uuid.UUID, reason string) map[string]interface{} {
	return map[string]interface{}{
		"job_id": jobID.String(),
		"status": "failed",
		"reason": reason,
	}
}
