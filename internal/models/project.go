package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Title              string
	QuizData           []byte
	GuideJSON          []byte // nil until a guide has been generated
	Public             bool
	CoverImageURL      sql.NullString
	Style              sql.NullString
	Room               sql.NullString
	Difficulty         sql.NullString
	EstimatedTime      sql.NullString
	Budget             sql.NullFloat64
	LikesCount         int
	EnvironmentalScore sql.NullFloat64
	CreatedAt          time.Time
}

type ProjectStep struct {
	ID              uuid.UUID
	ProjectID       uuid.UUID
	StepNumber      int
	Title           string
	Description     string
	ImageURL        sql.NullString
	ToolsNeeded     []string
	MaterialsNeeded []string
	EstimatedTime   sql.NullString
	CreatedAt       time.Time
}
