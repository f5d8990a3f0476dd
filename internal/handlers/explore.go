package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/supabase"
)

type ExploreHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewExploreHandler(dbClient *supabase.DatabaseClient) *ExploreHandler {
	return &ExploreHandler{dbClient: dbClient}
}

// Explore godoc
// @Summary     Browse public completed projects
// @Description Community feed of public projects with generated guides, sorted by popularity.
// @Tags        explore
// @Produce     json
// @Security    Bearer
// @Param       style query string false "Filter by style"
// @Param       room query string false "Filter by room"
// @Param       difficulty query string false "Filter by difficulty"
// @Param       search query string false "Search in project titles"
// @Param       limit query int false "Max results (default 24)"
// @Success     200 {object} models.ProjectListResponse
// @Router      /explore [get]
func (h *ExploreHandler) Explore(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	filters := supabase.ExploreFilters{
		Style:      c.Query("style"),
		Room:       c.Query("room"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		Limit:      limit,
	}

	projects, err := h.dbClient.ListPublicProjects(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "failed to load feed",
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
