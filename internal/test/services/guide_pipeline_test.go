package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"upcycle-wizard-backend/internal/gemini"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/services"
)

type fakeGenerator struct {
	guideText    string
	guideTextErr error

	imageErr   error
	imageCalls []string
}

func (f *fakeGenerator) GenerateGuideContent(ctx context.Context, prompt string) (string, error) {
	if f.guideTextErr != nil {
		return "", f.guideTextErr
	}
	return f.guideText, nil
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	f.imageCalls = append(f.imageCalls, prompt)
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return []byte("png-bytes"), nil
}

type fakeUploader struct {
	err     error
	uploads []int
}

func (f *fakeUploader) UploadStepImage(projectID uuid.UUID, stepNumber int, data []byte) (string, error) {
	f.uploads = append(f.uploads, stepNumber)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://storage.example.com/projects/%s/steps/%d.png", projectID, stepNumber), nil
}

type fakeStore struct {
	updateErr error
	insertErr error

	savedGuideJSON []byte
	savedTitle     string
	savedStyle     string
	savedCover     string
	savedSteps     []models.GuideStep
}

func (f *fakeStore) UpdateProjectGuide(projectID uuid.UUID, guideJSON []byte, title, style, difficulty, estimatedTime string, environmentalScore float64, coverImageURL string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.savedGuideJSON = guideJSON
	f.savedTitle = title
	f.savedStyle = style
	f.savedCover = coverImageURL
	return nil
}

func (f *fakeStore) InsertSteps(projectID uuid.UUID, steps []models.GuideStep) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.savedSteps = steps
	return nil
}

func validQuiz() models.QuizData {
	return models.QuizData{
		FurnitureType: "dresser",
		Size:          "medium",
		Materials:     []string{"wood"},
		Condition:     "worn",
		Rooms:         []string{"bedroom"},
		Style:         "scandinavian",
		ColorVibe:     "light neutrals",
		Tools:         []string{"sander", "brushes"},
	}
}

func twoStepGuideJSON() string {
	guide := map[string]any{
		"title":               "Scandinavian Dresser Revival",
		"overview":            "A light and airy makeover for a tired dresser.",
		"difficulty":          "Beginner",
		"estimated_time":      "1-2 days",
		"environmental_score": 4.5,
		"materials_list":      []string{"paint", "sandpaper"},
		"steps": []map[string]any{
			{
				"step_number":  1,
				"title":        "Sand the Surface",
				"description":  "Sand every surface with 120 grit, then 220 grit. Wipe down with a tack cloth.",
				"image_prompt": "freshly sanded dresser",
			},
			{
				"step_number":  2,
				"title":        "Paint the Body",
				"description":  "Apply two thin coats of paint, letting each dry fully.",
				"image_prompt": "dresser painted in soft white",
			},
		},
	}
	raw, _ := json.Marshal(guide)
	return string(raw)
}

func TestRun_HappyPath(t *testing.T) {
	gen := &fakeGenerator{guideText: twoStepGuideJSON()}
	uploader := &fakeUploader{}
	store := &fakeStore{}
	pipeline := services.NewGuidePipeline(gen, uploader, store, nil)
	projectID := uuid.New()

	result, err := pipeline.Run(context.Background(), projectID, validQuiz())

	require.NoError(t, err)
	require.NotNil(t, result.Guide)
	assert.False(t, result.UsedFallback)
	assert.Equal(t, "Scandinavian Dresser Revival", result.Guide.Title)
	require.Len(t, result.Guide.Steps, 2)

	// Each step got a generated image, uploaded in step order.
	assert.Equal(t, []int{1, 2}, uploader.uploads)
	for _, step := range result.Guide.Steps {
		assert.Contains(t, step.ImageURL, "storage.example.com")
	}

	// Image prompts carry the style and furniture context.
	require.Len(t, gen.imageCalls, 2)
	assert.Contains(t, gen.imageCalls[0], "scandinavian style")
	assert.Contains(t, gen.imageCalls[0], "dresser furniture")

	// Persisted project fields match the guide, cover is step one's image.
	assert.Equal(t, "Scandinavian Dresser Revival", store.savedTitle)
	assert.Equal(t, "scandinavian", store.savedStyle)
	assert.Equal(t, result.Guide.Steps[0].ImageURL, store.savedCover)
	assert.Len(t, store.savedSteps, 2)

	var persisted models.GuideData
	require.NoError(t, json.Unmarshal(store.savedGuideJSON, &persisted))
	assert.Equal(t, result.Guide.Title, persisted.Title)
}

func TestRun_NilProjectID(t *testing.T) {
	pipeline := services.NewGuidePipeline(&fakeGenerator{}, &fakeUploader{}, &fakeStore{}, nil)

	_, err := pipeline.Run(context.Background(), uuid.Nil, validQuiz())

	perr, ok := services.AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, services.CodeInvalidInput, perr.Code)
	assert.Equal(t, http.StatusBadRequest, perr.HTTPStatus())
}

func TestRun_IncompleteQuiz(t *testing.T) {
	pipeline := services.NewGuidePipeline(&fakeGenerator{}, &fakeUploader{}, &fakeStore{}, nil)
	quiz := validQuiz()
	quiz.Materials = nil

	_, err := pipeline.Run(context.Background(), uuid.New(), quiz)

	perr, ok := services.AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, services.CodeInvalidInput, perr.Code)
	assert.Contains(t, perr.Details, "material")
}

func TestRun_ImageFailuresDegradeToPlaceholders(t *testing.T) {
	gen := &fakeGenerator{
		guideText: twoStepGuideJSON(),
		imageErr:  errors.New("image model down"),
	}
	store := &fakeStore{}
	pipeline := services.NewGuidePipeline(gen, &fakeUploader{}, store, nil)

	result, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

	require.NoError(t, err)
	assert.Equal(t, services.PlaceholderImage(0), result.Guide.Steps[0].ImageURL)
	assert.Equal(t, services.PlaceholderImage(1), result.Guide.Steps[1].ImageURL)
	assert.NotEqual(t, result.Guide.Steps[0].ImageURL, result.Guide.Steps[1].ImageURL)
	assert.Equal(t, services.PlaceholderImage(0), store.savedCover)
}

func TestRun_UploadFailureDegradesToPlaceholder(t *testing.T) {
	gen := &fakeGenerator{guideText: twoStepGuideJSON()}
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}
	pipeline := services.NewGuidePipeline(gen, uploader, &fakeStore{}, nil)

	result, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

	require.NoError(t, err)
	assert.Equal(t, services.PlaceholderImage(0), result.Guide.Steps[0].ImageURL)
}

func TestRun_MissingImagePromptSkipsGenerator(t *testing.T) {
	guide := map[string]any{
		"title": "Plain Guide",
		"steps": []map[string]any{
			{"title": "Only Step", "description": "Do the thing carefully and completely."},
		},
	}
	raw, _ := json.Marshal(guide)

	gen := &fakeGenerator{guideText: string(raw)}
	pipeline := services.NewGuidePipeline(gen, &fakeUploader{}, &fakeStore{}, nil)

	result, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

	require.NoError(t, err)
	assert.Empty(t, gen.imageCalls)
	assert.Equal(t, services.PlaceholderImage(0), result.Guide.Steps[0].ImageURL)
}

func TestRun_ParseErrorIsFatalByDefault(t *testing.T) {
	gen := &fakeGenerator{guideText: "sorry, I cannot help with that"}
	pipeline := services.NewGuidePipeline(gen, &fakeUploader{}, &fakeStore{}, nil)

	_, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

	perr, ok := services.AsPipelineError(err)
	require.True(t, ok)
	assert.Equal(t, services.CodeParseError, perr.Code)
}

func TestRun_ParseErrorUsesFallbackWhenEnabled(t *testing.T) {
	gen := &fakeGenerator{guideText: "not json at all"}
	store := &fakeStore{}
	pipeline := services.NewGuidePipeline(gen, &fakeUploader{}, store, nil)
	pipeline.FallbackOnParseError = true

	result, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

	require.NoError(t, err)
	assert.True(t, result.UsedFallback)
	assert.Equal(t, "dresser Upcycling Project", result.Guide.Title)
	require.Len(t, result.Guide.Steps, 4)
	assert.Equal(t, "Preparation and Cleaning", result.Guide.Steps[0].Title)
	assert.InDelta(t, 4.25, result.Guide.EnvironmentalScore, 0.001)
	assert.NotEmpty(t, store.savedGuideJSON)
}

func TestRun_TextErrorClassification(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"missing api key", gemini.ErrMissingAPIKey, services.CodeMissingAPIKey, http.StatusInternalServerError},
		{"empty response", gemini.ErrEmptyResponse, services.CodeParseError, http.StatusInternalServerError},
		{"auth failure", &gemini.APIError{StatusCode: 401}, services.CodeAuthFailed, http.StatusUnauthorized},
		{"rate limited", &gemini.APIError{StatusCode: 429}, services.CodeRateLimited, http.StatusTooManyRequests},
		{"server error", &gemini.APIError{StatusCode: 503}, services.CodeUpstreamError, http.StatusBadGateway},
		{"transport error", errors.New("connection refused"), services.CodeUpstreamError, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{guideTextErr: tc.err}
			pipeline := services.NewGuidePipeline(gen, &fakeUploader{}, &fakeStore{}, nil)

			_, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

			perr, ok := services.AsPipelineError(err)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, perr.Code)
			assert.Equal(t, tc.wantStatus, perr.HTTPStatus())
		})
	}
}

func TestRun_StoreFailures(t *testing.T) {
	t.Run("project update fails", func(t *testing.T) {
		store := &fakeStore{updateErr: errors.New("connection reset")}
		pipeline := services.NewGuidePipeline(&fakeGenerator{guideText: twoStepGuideJSON()}, &fakeUploader{}, store, nil)

		_, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

		perr, ok := services.AsPipelineError(err)
		require.True(t, ok)
		assert.Equal(t, services.CodeDatabaseError, perr.Code)
	})

	t.Run("step insert fails", func(t *testing.T) {
		store := &fakeStore{insertErr: errors.New("unique violation")}
		pipeline := services.NewGuidePipeline(&fakeGenerator{guideText: twoStepGuideJSON()}, &fakeUploader{}, store, nil)

		_, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

		perr, ok := services.AsPipelineError(err)
		require.True(t, ok)
		assert.Equal(t, services.CodeDatabaseError, perr.Code)
		// The project update already happened by then.
		assert.NotEmpty(t, store.savedGuideJSON)
	})
}

func TestRun_CustomImageStrategy(t *testing.T) {
	gen := &fakeGenerator{guideText: twoStepGuideJSON()}
	pipeline := services.NewGuidePipeline(gen, &fakeUploader{}, &fakeStore{}, nil)
	pipeline.SetImageStrategy(func(ctx context.Context, projectID uuid.UUID, quiz models.QuizData, steps []models.GuideStep) {
		for i := range steps {
			steps[i].ImageURL = "https://cdn.example.com/custom.png"
		}
	})

	result, err := pipeline.Run(context.Background(), uuid.New(), validQuiz())

	require.NoError(t, err)
	assert.Empty(t, gen.imageCalls)
	assert.Equal(t, "https://cdn.example.com/custom.png", result.Guide.Steps[0].ImageURL)
}
