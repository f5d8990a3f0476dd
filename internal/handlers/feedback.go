package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/supabase"
)

type FeedbackHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewFeedbackHandler(dbClient *supabase.DatabaseClient) *FeedbackHandler {
	return &FeedbackHandler{dbClient: dbClient}
}

// CreateFeedback records a rating plus optional text and completed photo
// for a finished project.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}

	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid request body",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	fb, err := h.dbClient.CreateFeedback(userID, projectID, req.Rating, req.FeedbackText, req.CompletedImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to create feedback",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resp := models.FeedbackResponse{
		ID:        fb.ID.String(),
		UserID:    fb.UserID.String(),
		Rating:    fb.Rating,
		CreatedAt: fb.CreatedAt,
	}
	if fb.FeedbackText.Valid {
		resp.FeedbackText = fb.FeedbackText.String
	}
	if fb.CompletedImageURL.Valid {
		resp.CompletedImageURL = fb.CompletedImageURL.String
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}

	feedback, err := h.dbClient.ListFeedback(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to list feedback",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resp := models.FeedbackListResponse{Feedback: make([]models.FeedbackResponse, 0, len(feedback))}
	for _, fb := range feedback {
		fr := models.FeedbackResponse{
			ID:        fb.ID.String(),
			UserID:    fb.UserID.String(),
			Rating:    fb.Rating,
			CreatedAt: fb.CreatedAt,
		}
		if fb.FeedbackText.Valid {
			fr.FeedbackText = fb.FeedbackText.String
		}
		if fb.CompletedImageURL.Valid {
			fr.CompletedImageURL = fb.CompletedImageURL.String
		}
		resp.Feedback = append(resp.Feedback, fr)
	}
	c.JSON(http.StatusOK, resp)
}
