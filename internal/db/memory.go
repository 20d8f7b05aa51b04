package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-profiler/internal/types"
)

// MemoryStore keeps jobs and records in memory and is safe for concurrent
// use. It mirrors the behavior of DB for tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	jobs    map[uuid.UUID]*Job
	records map[uuid.UUID]*types.CandidateRecord
	logs    map[uuid.UUID][]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:    make(map[uuid.UUID]*Job),
		records: make(map[uuid.UUID]*types.CandidateRecord),
		logs:    make(map[uuid.UUID][]string),
	}
}

// CreateJob registers a new job and returns its ID.
func (s *MemoryStore) CreateJob(ctx context.Context, sourceName, format string) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.jobs[id] = &Job{
		ID:         id,
		SourceName: sourceName,
		Format:     format,
		Status:     StatusProcessing,
		CreatedAt:  time.Now().UTC(),
	}
	return id, nil
}

// CompleteJob marks a job as completed.
func (s *MemoryStore) CompleteJob(ctx context.Context, jobID uuid.UUID) error {
	return s.finish(ctx, jobID, StatusCompleted, nil)
}

// FailJob marks a job as failed with an error message.
func (s *MemoryStore) FailJob(ctx context.Context, jobID uuid.UUID, message string) error {
	return s.finish(ctx, jobID, StatusFailed, &message)
}

func (s *MemoryStore) finish(ctx context.Context, jobID uuid.UUID, status string, message *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	job.Status = status
	job.ErrorMessage = message
	job.CompletedAt = &now
	return nil
}

// SaveRecord stores the final candidate record and change log for a job.
func (s *MemoryStore) SaveRecord(ctx context.Context, jobID uuid.UUID, record *types.CandidateRecord, changeLog []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[jobID] = record
	s.logs[jobID] = append([]string(nil), changeLog...)
	return nil
}

// GetJob returns a job by ID, or nil when it does not exist.
func (s *MemoryStore) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

// GetRecord returns the saved record and change log for a job, or nils when
// no record was saved.
func (s *MemoryStore) GetRecord(ctx context.Context, jobID uuid.UUID) (*types.CandidateRecord, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[jobID]
	if !ok {
		return nil, nil, nil
	}
	return record, append([]string(nil), s.logs[jobID]...), nil
}
