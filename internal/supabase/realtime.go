package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish. Clients subscribe to
	// postgres changes on the projects row, which fire on our updates; this
	// remains the hook for explicit event publishing if that changes.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func GuideGenerationStartedPayload(projectID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "generating",
	}
}

func GuideCompletedPayload(projectID uuid.UUID, stepCount int, usedFallback bool) map[string]interface{} {
	return map[string]interface{}{
		"project_id":    projectID.String(),
		"status":        "completed",
		"step_count":    stepCount,
		"used_fallback": usedFallback,
	}
}

func GuideFailedPayload(projectID uuid.UUID, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "failed",
		"error":      errorMsg,
	}
}
