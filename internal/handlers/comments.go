package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/supabase"
)

type CommentsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewCommentsHandler(dbClient *supabase.DatabaseClient) *CommentsHandler {
	return &CommentsHandler{dbClient: dbClient}
}

func (h *CommentsHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid request body",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	comment, err := h.dbClient.CreateComment(userID, projectID, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to create comment",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.CommentResponse{
		ID:        comment.ID.String(),
		UserID:    comment.UserID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
}

func (h *CommentsHandler) ListComments(c *gin.Context) {
	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}

	comments, err := h.dbClient.ListComments(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to list comments",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resp := models.CommentsResponse{Comments: make([]models.CommentResponse, 0, len(comments))}
	for _, comment := range comments {
		resp.Comments = append(resp.Comments, models.CommentResponse{
			ID:        comment.ID.String(),
			UserID:    comment.UserID.String(),
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
