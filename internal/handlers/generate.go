package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"upcycle-wizard-backend/internal/config"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/services"
)

// GuideRunner is the slice of the pipeline this handler needs.
type GuideRunner interface {
	Run(ctx context.Context, projectID uuid.UUID, quiz models.QuizData) (*services.GenerationResult, error)
}

type GenerateHandler struct {
	pipeline GuideRunner
}

func NewGenerateHandler(pipeline GuideRunner) *GenerateHandler {
	return &GenerateHandler{pipeline: pipeline}
}

// Generate godoc
// @Summary     Generate an upcycling guide for a project
// @Description Runs the full generation pipeline: guide text, per-step images, persistence. Blocks until the run completes.
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateGuideRequest true "Project id and quiz answers"
// @Success     200 {object} models.GenerateGuideResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /generate-guide [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	start := time.Now()

	var req models.GenerateGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid request body",
			Code:      services.CodeInvalidInput,
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "projectId must be a valid UUID",
			Code:      services.CodeInvalidInput,
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), projectID, req.QuizData)
	if err != nil {
		perr, ok := services.AsPipelineError(err)
		if !ok {
			config.Log.WithError(err).Error("guide generation failed with untyped error")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "failed to generate guide",
				Code:      "INTERNAL_ERROR",
				Details:   err.Error(),
				Timestamp: time.Now().UTC(),
			})
			return
		}

		c.JSON(perr.HTTPStatus(), models.ErrorResponse{
			Error:     perr.Message,
			Code:      perr.Code,
			Details:   perr.Details,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, models.GenerateGuideResponse{
		Success: true,
		Guide:   result.Guide,
		Metadata: models.GuideMetadata{
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			Timestamp:        time.Now().UTC(),
			UsedFallback:     result.UsedFallback,
		},
	})
}
