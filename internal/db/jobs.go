package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-profiler/internal/types"
)

// CreateJob creates a new extraction job record and returns its ID
func (db *DB) CreateJob(ctx context.Context, sourceName, format string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (source_name, format, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		sourceName, format, StatusProcessing,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// CompleteJob marks a job as completed
func (db *DB) CompleteJob(ctx context.Context, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, completed_at = NOW() WHERE id = $2`,
		StatusCompleted, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	return nil
}

// FailJob marks a job as failed with an error message
func (db *DB) FailJob(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error_message = $2, completed_at = NOW() WHERE id = $3`,
		StatusFailed, message, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}
	return nil
}

// SaveRecord stores the final candidate record and change log for a job
func (db *DB) SaveRecord(ctx context.Context, jobID uuid.UUID, record *types.CandidateRecord, changeLog []string) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal candidate record: %w", err)
	}
	logJSON, err := json.Marshal(changeLog)
	if err != nil {
		return fmt.Errorf("failed to marshal change log: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_records (job_id, record, change_log)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id) DO UPDATE SET record = $2, change_log = $3, created_at = NOW()`,
		jobID, recordJSON, logJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate record: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID. Returns nil when the job does not exist.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, source_name, format, status, error_message, created_at, completed_at
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.SourceName, &job.Format, &job.Status, &job.ErrorMessage, &job.CreatedAt, &job.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// GetRecord retrieves the candidate record and change log for a job. Returns
// nil when no record was saved.
func (db *DB) GetRecord(ctx context.Context, jobID uuid.UUID) (*types.CandidateRecord, []string, error) {
	var recordJSON, logJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT record, change_log FROM candidate_records WHERE job_id = $1`,
		jobID,
	).Scan(&recordJSON, &logJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get candidate record: %w", err)
	}

	var record types.CandidateRecord
	if err := json.Unmarshal(recordJSON, &record); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal candidate record: %w", err)
	}
	var changeLog []string
	if err := json.Unmarshal(logJSON, &changeLog); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal change log: %w", err)
	}
	return &record, changeLog, nil
}
