package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"upcycle-wizard-backend/internal/models"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io/v1"
	defaultVoiceID = "pNInz6obpgDQGcFmaJgB"
	defaultModelID = "eleven_multilingual_v2"
)

// APIError is a non-2xx answer from the ElevenLabs API, carrying the
// machine code the frontend switches on.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("elevenlabs api returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

type Client struct {
	baseURL        string
	apiKey         string
	defaultVoiceID string
	httpClient     *http.Client
}

func NewClient(baseURL, apiKey, voiceID string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		apiKey:         apiKey,
		defaultVoiceID: voiceID,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

type synthesizeBody struct {
	Text          string               `json:"text"`
	ModelID       string               `json:"model_id"`
	VoiceSettings models.VoiceSettings `json:"voice_settings"`
}

// Synthesize converts text to speech and returns raw MP3 bytes.
func (c *Client) Synthesize(ctx context.Context, req models.TextToSpeechRequest) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       "MISSING_API_KEY",
			Message:    "ElevenLabs API key not configured",
		}
	}

	settings := models.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.75}
	if req.VoiceSettings != nil {
		settings = *req.VoiceSettings
	}

	body := synthesizeBody{
		Text:          strings.TrimSpace(req.Text),
		ModelID:       req.ModelID,
		VoiceSettings: settings,
	}
	if body.ModelID == "" {
		body.ModelID = defaultModelID
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = c.defaultVoiceID
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, voiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp.StatusCode, string(data))
	}
	return data, nil
}

func classifyError(status int, body string) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}
	switch {
	case status == 401:
		apiErr.Code = "INVALID_API_KEY"
		apiErr.Message = "Invalid ElevenLabs API key"
	case status == 429:
		apiErr.Code = "RATE_LIMIT_EXCEEDED"
		apiErr.Message = "ElevenLabs API rate limit exceeded"
	case status == 422:
		apiErr.Code = "INVALID_PARAMETERS"
		apiErr.Message = "Invalid request parameters for ElevenLabs API"
	case status >= 500:
		apiErr.Code = "SERVICE_UNAVAILABLE"
		apiErr.Message = "ElevenLabs service temporarily unavailable"
	default:
		apiErr.Code = "EXTERNAL_API_ERROR"
		apiErr.Message = "ElevenLabs API error"
	}
	return apiErr
}
