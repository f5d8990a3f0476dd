package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"upcycle-wizard-backend/internal/middleware"
	"upcycle-wizard-backend/internal/models"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
// It writes the error response itself when the id is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:     "user id not found",
			Timestamp: time.Now().UTC(),
		})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid user id",
			Timestamp: time.Now().UTC(),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathProjectID parses the project_id route parameter.
func pathProjectID(c *gin.Context) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid project id",
			Timestamp: time.Now().UTC(),
		})
		return uuid.Nil, false
	}
	return projectID, true
}

func projectToResponse(p models.Project, includeGuide bool) models.ProjectResponse {
	resp := models.ProjectResponse{
		ID:         p.ID.String(),
		Title:      p.Title,
		Public:     p.Public,
		LikesCount: p.LikesCount,
		CreatedAt:  p.CreatedAt,
	}
	if p.CoverImageURL.Valid {
		resp.CoverImageURL = p.CoverImageURL.String
	}
	if p.Style.Valid {
		resp.Style = p.Style.String
	}
	if p.Room.Valid {
		resp.Room = p.Room.String
	}
	if p.Difficulty.Valid {
		resp.Difficulty = p.Difficulty.String
	}
	if p.EstimatedTime.Valid {
		resp.EstimatedTime = p.EstimatedTime.String
	}
	if p.Budget.Valid {
		budget := p.Budget.Float64
		resp.Budget = &budget
	}
	if p.EnvironmentalScore.Valid {
		score := p.EnvironmentalScore.Float64
		resp.EnvironmentalScore = &score
	}
	if includeGuide && len(p.GuideJSON) > 0 {
		var guide models.GuideData
		if err := json.Unmarshal(p.GuideJSON, &guide); err == nil {
			resp.Guide = &guide
		}
	}
	return resp
}
