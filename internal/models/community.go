package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Like struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID uuid.UUID
	CreatedAt time.Time
}

type Comment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Content   string
	CreatedAt time.Time
}

type Feedback struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ProjectID         uuid.UUID
	Rating            int
	FeedbackText      sql.NullString
	CompletedImageURL sql.NullString
	CreatedAt         time.Time
}
