package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"upcycle-wizard-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const projectColumns = `id, user_id, title, quiz_data, guide_json, public, cover_image_url,
		style, room, difficulty, estimated_time, budget, likes_count, environmental_score, created_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.QuizData, &p.GuideJSON, &p.Public, &p.CoverImageURL,
		&p.Style, &p.Room, &p.Difficulty, &p.EstimatedTime, &p.Budget, &p.LikesCount,
		&p.EnvironmentalScore, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DatabaseClient) CreateProject(userID uuid.UUID, title string, quizJSON []byte, public bool, room, style string, budget *float64) (*models.Project, error) {
	project, err := scanProject(d.db.QueryRow(`
		INSERT INTO projects (id, user_id, title, quiz_data, public, room, style, budget)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING `+projectColumns+`
	`, uuid.New(), userID, title, quizJSON, public, room, style, budget))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (d *DatabaseClient) GetProject(projectID uuid.UUID) (*models.Project, error) {
	project, err := scanProject(d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1
	`, projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (d *DatabaseClient) GetUserProject(projectID, userID uuid.UUID) (*models.Project, error) {
	project, err := scanProject(d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (d *DatabaseClient) ListUserProjects(userID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// ExploreFilters narrows the public feed. Zero values mean "no filter".
type ExploreFilters struct {
	Style      string
	Room       string
	Difficulty string
	Search     string
	Limit      int
}

func (d *DatabaseClient) ListPublicProjects(filters ExploreFilters) ([]models.Project, error) {
	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 24
	}

	rows, err := d.db.Query(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE public = TRUE
		  AND guide_json IS NOT NULL
		  AND ($1 = '' OR style = $1)
		  AND ($2 = '' OR room = $2)
		  AND ($3 = '' OR difficulty = $3)
		  AND ($4 = '' OR title ILIKE '%' || $4 || '%')
		ORDER BY likes_count DESC, created_at DESC
		LIMIT $5
	`, filters.Style, filters.Room, filters.Difficulty, filters.Search, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list public projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func collectProjects(rows *sql.Rows) ([]models.Project, error) {
	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// UpdateProjectGuide writes the completed guide document and its derived
// summary fields in one statement. Called exactly once per generation run.
func (d *DatabaseClient) UpdateProjectGuide(projectID uuid.UUID, guideJSON []byte, title, style, difficulty, estimatedTime string, environmentalScore float64, coverImageURL string) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET guide_json = $1, title = $2, style = $3, difficulty = $4,
		    estimated_time = $5, environmental_score = $6,
		    cover_image_url = NULLIF($7, '')
		WHERE id = $8
	`, guideJSON, title, style, difficulty, estimatedTime, environmentalScore, coverImageURL, projectID)
	if err != nil {
		return fmt.Errorf("failed to update project guide: %w", err)
	}
	return nil
}

// InsertSteps bulk-inserts the guide's steps in a single transaction,
// replacing any rows left over from a prior generation attempt.
func (d *DatabaseClient) InsertSteps(projectID uuid.UUID, steps []models.GuideStep) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM steps WHERE project_id = $1`, projectID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear previous steps: %w", err)
	}

	for _, step := range steps {
		_, err := tx.Exec(`
			INSERT INTO steps (project_id, step_number, title, description, image_url,
			                   tools_needed, materials_needed, estimated_time)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		`, projectID, step.StepNumber, step.Title, step.Description, step.ImageURL,
			pq.Array(step.ToolsNeeded), pq.Array(step.MaterialsNeeded), step.EstimatedTime)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert step %d: %w", step.StepNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit steps: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetProjectSteps(projectID uuid.UUID) ([]models.ProjectStep, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, step_number, title, description, image_url,
		       tools_needed, materials_needed, estimated_time, created_at
		FROM steps
		WHERE project_id = $1
		ORDER BY step_number ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get steps: %w", err)
	}
	defer rows.Close()

	var steps []models.ProjectStep
	for rows.Next() {
		var step models.ProjectStep
		err := rows.Scan(
			&step.ID, &step.ProjectID, &step.StepNumber, &step.Title, &step.Description,
			&step.ImageURL, pq.Array(&step.ToolsNeeded), pq.Array(&step.MaterialsNeeded),
			&step.EstimatedTime, &step.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, step)
	}

	return steps, rows.Err()
}

// ToggleLike flips the user's like for a project and keeps likes_count in
// sync, all within one transaction. Returns the new state.
func (d *DatabaseClient) ToggleLike(userID, projectID uuid.UUID) (bool, int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var likeID uuid.UUID
	err = tx.QueryRow(`
		SELECT id FROM likes WHERE user_id = $1 AND project_id = $2
	`, userID, projectID).Scan(&likeID)

	liked := false
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(`
			INSERT INTO likes (user_id, project_id) VALUES ($1, $2)
		`, userID, projectID); err != nil {
			tx.Rollback()
			return false, 0, fmt.Errorf("failed to insert like: %w", err)
		}
		liked = true
	case err != nil:
		tx.Rollback()
		return false, 0, fmt.Errorf("failed to check like: %w", err)
	default:
		if _, err := tx.Exec(`DELETE FROM likes WHERE id = $1`, likeID); err != nil {
			tx.Rollback()
			return false, 0, fmt.Errorf("failed to delete like: %w", err)
		}
	}

	var count int
	err = tx.QueryRow(`
		UPDATE projects
		SET likes_count = (SELECT COUNT(*) FROM likes WHERE project_id = $1)
		WHERE id = $1
		RETURNING likes_count
	`, projectID).Scan(&count)
	if err != nil {
		tx.Rollback()
		return false, 0, fmt.Errorf("failed to update likes count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit like toggle: %w", err)
	}
	return liked, count, nil
}

func (d *DatabaseClient) CreateComment(userID, projectID uuid.UUID, content string) (*models.Comment, error) {
	var comment models.Comment
	err := d.db.QueryRow(`
		INSERT INTO comments (user_id, project_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, project_id, content, created_at
	`, userID, projectID, content).Scan(
		&comment.ID, &comment.UserID, &comment.ProjectID, &comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

func (d *DatabaseClient) ListComments(projectID uuid.UUID) ([]models.Comment, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, project_id, content, created_at
		FROM comments
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.UserID, &comment.ProjectID, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func (d *DatabaseClient) CreateFeedback(userID, projectID uuid.UUID, rating int, feedbackText, completedImageURL string) (*models.Feedback, error) {
	var fb models.Feedback
	err := d.db.QueryRow(`
		INSERT INTO feedback (user_id, project_id, rating, feedback_text, completed_image_url)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id, user_id, project_id, rating, feedback_text, completed_image_url, created_at
	`, userID, projectID, rating, feedbackText, completedImageURL).Scan(
		&fb.ID, &fb.UserID, &fb.ProjectID, &fb.Rating, &fb.FeedbackText, &fb.CompletedImageURL, &fb.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &fb, nil
}

func (d *DatabaseClient) ListFeedback(projectID uuid.UUID) ([]models.Feedback, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, project_id, rating, feedback_text, completed_image_url, created_at
		FROM feedback
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.ProjectID, &fb.Rating, &fb.FeedbackText, &fb.CompletedImageURL, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, fb)
	}

	return feedback, rows.Err()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
