package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"upcycle-wizard-backend/internal/config"
	"upcycle-wizard-backend/internal/gemini"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/supabase"
)

// Generator produces guide text and step images. *gemini.Client satisfies
// it; tests substitute fakes.
type Generator interface {
	GenerateGuideContent(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// StepImageUploader stores generated image bytes and returns a public URL.
type StepImageUploader interface {
	UploadStepImage(projectID uuid.UUID, stepNumber int, data []byte) (string, error)
}

// GuideStore persists the completed guide and its steps.
type GuideStore interface {
	UpdateProjectGuide(projectID uuid.UUID, guideJSON []byte, title, style, difficulty, estimatedTime string, environmentalScore float64, coverImageURL string) error
	InsertSteps(projectID uuid.UUID, steps []models.GuideStep) error
}

// ImageStrategy fills in step image URLs in place. The default walks steps
// strictly in order so the first step's image is always the cover; an
// implementation may parallelize as long as it preserves that contract.
type ImageStrategy func(ctx context.Context, projectID uuid.UUID, quiz models.QuizData, steps []models.GuideStep)

// GenerationResult is the outcome of a successful pipeline run.
type GenerationResult struct {
	Guide        *models.GuideData
	UsedFallback bool
}

// GuidePipeline turns a project's quiz answers into a stored guide with
// per-step images. One run per project at a time is the caller's job; the
// pipeline itself holds no cross-run state.
type GuidePipeline struct {
	generator Generator
	uploader  StepImageUploader
	store     GuideStore
	realtime  *supabase.RealtimeClient
	log       *logrus.Logger

	imageStrategy ImageStrategy

	// FallbackOnParseError substitutes a generic guide instead of failing
	// when the model's output cannot be parsed. The result is flagged.
	FallbackOnParseError bool
}

func NewGuidePipeline(generator Generator, uploader StepImageUploader, store GuideStore, realtime *supabase.RealtimeClient) *GuidePipeline {
	p := &GuidePipeline{
		generator: generator,
		uploader:  uploader,
		store:     store,
		realtime:  realtime,
		log:       config.Log,
	}
	p.imageStrategy = p.sequentialStepImages
	return p
}

// SetImageStrategy replaces the per-step image pass, used by tests and by
// callers that want concurrent generation.
func (p *GuidePipeline) SetImageStrategy(strategy ImageStrategy) {
	p.imageStrategy = strategy
}

// Run executes one end-to-end generation for a project. Errors are always
// *PipelineError; image failures degrade to placeholders and never abort.
func (p *GuidePipeline) Run(ctx context.Context, projectID uuid.UUID, quiz models.QuizData) (*GenerationResult, error) {
	if projectID == uuid.Nil {
		return nil, newPipelineError(CodeInvalidInput, "projectId is required", nil)
	}
	if err := quiz.Validate(); err != nil {
		return nil, newPipelineError(CodeInvalidInput, "quiz data is incomplete", err)
	}

	log := p.log.WithFields(logrus.Fields{"project_id": projectID, "furniture_type": quiz.FurnitureType})
	log.Info("starting guide generation")

	if p.realtime != nil {
		p.realtime.PublishProjectEvent(projectID, "guide_generation_started",
			supabase.GuideGenerationStartedPayload(projectID))
	}

	guide, usedFallback, err := p.generateGuideText(ctx, quiz)
	if err != nil {
		if p.realtime != nil {
			p.realtime.PublishProjectEvent(projectID, "guide_generation_failed",
				supabase.GuideFailedPayload(projectID, err.Error()))
		}
		return nil, err
	}

	p.imageStrategy(ctx, projectID, quiz, guide.Steps)

	if err := p.persistGuide(projectID, quiz, guide); err != nil {
		if p.realtime != nil {
			p.realtime.PublishProjectEvent(projectID, "guide_generation_failed",
				supabase.GuideFailedPayload(projectID, err.Error()))
		}
		return nil, err
	}

	if p.realtime != nil {
		p.realtime.PublishProjectEvent(projectID, "guide_completed",
			supabase.GuideCompletedPayload(projectID, len(guide.Steps), usedFallback))
	}

	log.WithFields(logrus.Fields{"steps": len(guide.Steps), "used_fallback": usedFallback}).
		Info("guide generation completed")

	return &GenerationResult{Guide: guide, UsedFallback: usedFallback}, nil
}

// generateGuideText obtains the guide skeleton from the text model. Retry
// happens inside the generator; classification of the final error happens
// here. Parse failures are structural, never retried.
func (p *GuidePipeline) generateGuideText(ctx context.Context, quiz models.QuizData) (*models.GuideData, bool, error) {
	prompt := BuildGuidePrompt(quiz)

	raw, err := p.generator.GenerateGuideContent(ctx, prompt)
	if err != nil {
		return nil, false, p.classifyTextError(err)
	}

	guide, parseErr := ParseGuide(raw)
	if parseErr != nil {
		if p.FallbackOnParseError {
			p.log.WithError(parseErr).Warn("guide parse failed, substituting fallback guide")
			return fallbackGuide(quiz), true, nil
		}
		return nil, false, newPipelineError(CodeParseError, "AI response could not be parsed", parseErr)
	}

	return guide, false, nil
}

func (p *GuidePipeline) classifyTextError(err error) *PipelineError {
	if errors.Is(err, gemini.ErrMissingAPIKey) {
		return newPipelineError(CodeMissingAPIKey, "AI service is not properly configured", err)
	}
	if errors.Is(err, gemini.ErrEmptyResponse) {
		return newPipelineError(CodeParseError, "AI service returned an empty response", err)
	}

	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.AuthFailure():
			return newPipelineError(CodeAuthFailed, "AI service authentication failed", err)
		case apiErr.StatusCode == 429:
			return newPipelineError(CodeRateLimited, "Too many requests, please try again later", err)
		default:
			return newPipelineError(CodeUpstreamError, "AI service is temporarily unavailable", err)
		}
	}

	return newPipelineError(CodeUpstreamError, "AI service is unreachable", err)
}

// sequentialStepImages generates and uploads one image per step, strictly
// in step order. A failure for one step substitutes a placeholder and
// moves on; it never affects other steps or the run.
func (p *GuidePipeline) sequentialStepImages(ctx context.Context, projectID uuid.UUID, quiz models.QuizData, steps []models.GuideStep) {
	for i := range steps {
		steps[i].ImageURL = p.stepImage(ctx, projectID, quiz, steps[i], i)
	}
}

func (p *GuidePipeline) stepImage(ctx context.Context, projectID uuid.UUID, quiz models.QuizData, step models.GuideStep, stepIndex int) string {
	if step.ImagePrompt == "" {
		return PlaceholderImage(stepIndex)
	}

	prompt := step.ImagePrompt + ", " + quiz.Style + " style, " + quiz.FurnitureType + " furniture, DIY photography"

	log := p.log.WithFields(logrus.Fields{"project_id": projectID, "step": stepIndex + 1})

	data, err := p.generator.GenerateImage(ctx, prompt)
	if err != nil {
		log.WithError(err).Warn("step image generation failed, using placeholder")
		return PlaceholderImage(stepIndex)
	}

	url, err := p.uploader.UploadStepImage(projectID, stepIndex+1, data)
	if err != nil {
		log.WithError(err).Warn("step image upload failed, using placeholder")
		return PlaceholderImage(stepIndex)
	}

	return url
}

// persistGuide writes the project update and then the step rows. A failure
// of either aborts the run; a partial project update is not rolled back.
func (p *GuidePipeline) persistGuide(projectID uuid.UUID, quiz models.QuizData, guide *models.GuideData) error {
	guideJSON, err := json.Marshal(guide)
	if err != nil {
		return newPipelineError(CodeInvalidStructure, "generated guide could not be encoded", err)
	}

	coverImageURL := ""
	if len(guide.Steps) > 0 {
		coverImageURL = guide.Steps[0].ImageURL
	}

	if err := p.store.UpdateProjectGuide(projectID, guideJSON, guide.Title, quiz.Style,
		guide.Difficulty, guide.EstimatedTime, guide.EnvironmentalScore, coverImageURL); err != nil {
		return newPipelineError(CodeDatabaseError, "failed to save guide", err)
	}

	if err := p.store.InsertSteps(projectID, guide.Steps); err != nil {
		return newPipelineError(CodeDatabaseError, "failed to save guide steps", err)
	}

	return nil
}
