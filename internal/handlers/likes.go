package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/supabase"
)

type LikesHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewLikesHandler(dbClient *supabase.DatabaseClient) *LikesHandler {
	return &LikesHandler{dbClient: dbClient}
}

// ToggleLike flips the caller's like on a project and returns the new state.
func (h *LikesHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}

	if _, err := h.dbClient.GetProject(projectID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "project not found",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	liked, count, err := h.dbClient.ToggleLike(userID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to update like status",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, models.LikeResponse{
		ProjectID:  projectID.String(),
		Liked:      liked,
		LikesCount: count,
	})
}
