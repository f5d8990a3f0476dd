package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://generativelanguage.googleapis.com/v1beta"
	defaultTextModel     = "gemini-2.0-flash"
	defaultImageModel    = "imagen-3.0-generate-002"
	defaultImageFallback = "imagen-3.0-fast-generate-001"

	defaultMaxRetries = 3
	retryBaseDelay    = 1 * time.Second
	retryMaxDelay     = 8 * time.Second
)

type Config struct {
	APIKey             string
	BaseURL            string
	TextModel          string
	ImageModel         string
	ImageFallbackModel string

	// HTTPClient and Sleep exist so tests can drive the retry loop
	// without real time or network.
	HTTPClient *http.Client
	Sleep      func(time.Duration)
	MaxRetries int
}

// Client calls the Gemini generateContent and Imagen predict endpoints.
// Credentials are injected at construction; there is no ambient state.
type Client struct {
	apiKey             string
	baseURL            string
	textModel          string
	imageModel         string
	imageFallbackModel string
	httpClient         *http.Client
	sleep              func(time.Duration)
	maxRetries         int
}

func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:             cfg.APIKey,
		baseURL:            strings.TrimSuffix(cfg.BaseURL, "/"),
		textModel:          cfg.TextModel,
		imageModel:         cfg.ImageModel,
		imageFallbackModel: cfg.ImageFallbackModel,
		httpClient:         cfg.HTTPClient,
		sleep:              cfg.Sleep,
		maxRetries:         cfg.MaxRetries,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.textModel == "" {
		c.textModel = defaultTextModel
	}
	if c.imageModel == "" {
		c.imageModel = defaultImageModel
	}
	if c.imageFallbackModel == "" {
		c.imageFallbackModel = defaultImageFallback
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	if c.maxRetries == 0 {
		c.maxRetries = defaultMaxRetries
	}
	return c
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func defaultSafetySettings() []safetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]safetySetting, len(categories))
	for i, category := range categories {
		settings[i] = safetySetting{Category: category, Threshold: "BLOCK_MEDIUM_AND_ABOVE"}
	}
	return settings
}

// GenerateGuideContent sends the guide prompt to the text model and returns
// the raw generated text. Rate limiting and server errors are retried with
// exponential backoff; auth failures propagate immediately.
func (c *Client) GenerateGuideContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 4096,
		},
		SafetySettings: defaultSafetySettings(),
	}

	var text string
	err := c.withRetry(ctx, func() error {
		url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.textModel, c.apiKey)
		body, err := c.post(ctx, url, reqBody)
		if err != nil {
			return err
		}

		var result generateContentResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
			return ErrEmptyResponse
		}
		text = result.Candidates[0].Content.Parts[0].Text
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// GenerateImage renders a prompt with the primary image model, falling back
// to exactly one alternate model on any failure. Callers are expected to
// substitute a placeholder when both fail; this method never retries.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	data, err := c.predict(ctx, c.imageModel, prompt)
	if err == nil {
		return data, nil
	}
	return c.predict(ctx, c.imageFallbackModel, prompt)
}

func (c *Client) predict(ctx context.Context, model, prompt string) ([]byte, error) {
	reqBody := predictRequest{
		Instances: []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{
			SampleCount:    1,
			AspectRatio:    "4:3",
			NegativePrompt: "blurry, low quality, distorted, text, watermark",
		},
	}

	url := fmt.Sprintf("%s/models/%s:predict?key=%s", c.baseURL, model, c.apiKey)
	body, err := c.post(ctx, url, reqBody)
	if err != nil {
		return nil, err
	}

	var result predictResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Predictions) == 0 || result.Predictions[0].BytesBase64Encoded == "" {
		return nil, fmt.Errorf("predict response for model %s contains no image", model)
	}

	data, err := base64.StdEncoding.DecodeString(result.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image bytes: %w", err)
	}
	return data, nil
}

func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// withRetry re-attempts fn for retryable API errors only, doubling the
// delay each attempt up to retryMaxDelay, for at most maxRetries retries.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt >= c.maxRetries {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.sleep(delay)
		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}
}
