package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/supabase"
)

type ProjectsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient) *ProjectsHandler {
	return &ProjectsHandler{dbClient: dbClient}
}

// CreateProject godoc
// @Summary     Create a project from a completed quiz
// @Description Snapshots the quiz answers into a new project. Guide generation is triggered separately.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProjectRequest true "Quiz submission"
// @Success     201 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid request body",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if err := req.QuizData.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "quiz data is incomplete",
			Code:      "INVALID_INPUT",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s Upcycling Project", req.QuizData.FurnitureType)
	}

	quizJSON, err := json.Marshal(req.QuizData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid quiz data",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	room := ""
	if len(req.QuizData.Rooms) > 0 {
		room = req.QuizData.Rooms[0]
	}

	project, err := h.dbClient.CreateProject(userID, title, quizJSON, public, room, req.QuizData.Style, req.QuizData.Budget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to create project",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusCreated, projectToResponse(*project, false))
}

// ListProjects returns the authenticated user's projects, newest first.
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projects, err := h.dbClient.ListUserProjects(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to list projects",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resp := models.ProjectListResponse{Projects: make([]models.ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, projectToResponse(p, false))
	}
	c.JSON(http.StatusOK, resp)
}

// GetProject returns a single project. Private projects are only visible
// to their owner.
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "project not found",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if !project.Public && project.UserID != userID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "project not found",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, projectToResponse(*project, true))
}

// GetSteps returns the project's persisted steps in order.
func (h *ProjectsHandler) GetSteps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil || (!project.Public && project.UserID != userID) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "project not found",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	steps, err := h.dbClient.GetProjectSteps(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to get steps",
			Code:      "DATABASE_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resp := models.StepsResponse{Steps: make([]models.StepResponse, 0, len(steps))}
	for _, step := range steps {
		sr := models.StepResponse{
			ID:              step.ID.String(),
			StepNumber:      step.StepNumber,
			Title:           step.Title,
			Description:     step.Description,
			ToolsNeeded:     step.ToolsNeeded,
			MaterialsNeeded: step.MaterialsNeeded,
		}
		if step.ImageURL.Valid {
			sr.ImageURL = step.ImageURL.String
		}
		if step.EstimatedTime.Valid {
			sr.EstimatedTime = step.EstimatedTime.String
		}
		resp.Steps = append(resp.Steps, sr)
	}
	c.JSON(http.StatusOK, resp)
}
