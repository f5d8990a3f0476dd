package models

import "time"

type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type GenerateGuideResponse struct {
	Success  bool          `json:"success"`
	Guide    *GuideData    `json:"guide"`
	Metadata GuideMetadata `json:"metadata"`
}

type GuideMetadata struct {
	ProcessingTimeMS int64     `json:"processing_time_ms"`
	Timestamp        time.Time `json:"timestamp"`
	UsedFallback     bool      `json:"used_fallback"`
}

type ProjectResponse struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Public             bool       `json:"public"`
	CoverImageURL      string     `json:"cover_image_url,omitempty"`
	Style              string     `json:"style,omitempty"`
	Room               string     `json:"room,omitempty"`
	Difficulty         string     `json:"difficulty,omitempty"`
	EstimatedTime      string     `json:"estimated_time,omitempty"`
	Budget             *float64   `json:"budget,omitempty"`
	LikesCount         int        `json:"likes_count"`
	EnvironmentalScore *float64   `json:"environmental_score,omitempty"`
	Guide              *GuideData `json:"guide,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type StepResponse struct {
	ID              string   `json:"id"`
	StepNumber      int      `json:"step_number"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"image_url,omitempty"`
	ToolsNeeded     []string `json:"tools_needed"`
	MaterialsNeeded []string `json:"materials_needed"`
	EstimatedTime   string   `json:"estimated_time,omitempty"`
}

type StepsResponse struct {
	Steps []StepResponse `json:"steps"`
}

type LikeResponse struct {
	ProjectID  string `json:"project_id"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likes_count"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

type FeedbackResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Rating            int       `json:"rating"`
	FeedbackText      string    `json:"feedback_text,omitempty"`
	CompletedImageURL string    `json:"completed_image_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type FeedbackListResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
