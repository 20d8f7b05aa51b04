package db

import (
	"time"

	"github.com/google/uuid"
)

// Job status constants. A job ends in exactly one terminal status.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job represents one extraction job record
type Job struct {
	ID           uuid.UUID  `json:"id"`
	SourceName   string     `json:"source_name"`
	Format       string     `json:"format"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
