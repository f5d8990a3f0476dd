package models

// CreateProjectRequest creates a project from a finished quiz. The title is
// derived from the furniture type when not provided.
type CreateProjectRequest struct {
	Title    string   `json:"title,omitempty"`
	QuizData QuizData `json:"quiz_data"`
	Public   *bool    `json:"public,omitempty"`
}

// GenerateGuideRequest triggers a guide generation run for a project.
type GenerateGuideRequest struct {
	ProjectID string   `json:"projectId"`
	QuizData  QuizData `json:"quizData"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateFeedbackRequest struct {
	Rating            int    `json:"rating" binding:"required,min=1,max=5"`
	FeedbackText      string `json:"feedback_text,omitempty"`
	CompletedImageURL string `json:"completed_image_url,omitempty"`
}

// TextToSpeechRequest mirrors the narration collaborator's contract.
type TextToSpeechRequest struct {
	Text          string         `json:"text" binding:"required"`
	VoiceID       string         `json:"voice_id,omitempty"`
	ModelID       string         `json:"model_id,omitempty"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
}

type VoiceSettings struct {
	Stability       float64  `json:"stability"`
	SimilarityBoost float64  `json:"similarity_boost"`
	Style           *float64 `json:"style,omitempty"`
	UseSpeakerBoost *bool    `json:"use_speaker_boost,omitempty"`
}
