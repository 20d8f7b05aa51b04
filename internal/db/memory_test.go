package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-profiler/internal/types"
)

func TestMemoryStore_JobLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.CreateJob(ctx, "resume.pdf", "pdf")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	job, err := store.GetJob(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "resume.pdf", job.SourceName)
	assert.Equal(t, "pdf", job.Format)
	assert.Equal(t, StatusProcessing, job.Status)
	assert.Nil(t, job.CompletedAt)

	require.NoError(t, store.CompleteJob(ctx, id))

	job, err = store.GetJob(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Nil(t, job.ErrorMessage)
}

func TestMemoryStore_FailJob(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.CreateJob(ctx, "resume.docx", "docx")
	require.NoError(t, err)

	require.NoError(t, store.FailJob(ctx, id, "document error: unreadable"))

	job, err := store.GetJob(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	require.NotNil(t, job.ErrorMessage)
	assert.Contains(t, *job.ErrorMessage, "unreadable")

	// Nothing persisted for a failed job.
	record, changeLog, err := store.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Nil(t, changeLog)
}

func TestMemoryStore_SaveAndGetRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.CreateJob(ctx, "resume.txt", "txt")
	require.NoError(t, err)

	email := "jane@example.com"
	record := &types.CandidateRecord{Email: &email}
	require.NoError(t, store.SaveRecord(ctx, id, record, []string{"email: normalized"}))

	got, changeLog, err := store.GetRecord(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "jane@example.com", *got.Email)
	assert.Equal(t, []string{"email: normalized"}, changeLog)
}

func TestMemoryStore_UnknownJob(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	job, err := store.GetJob(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	_, err := store.CreateJob(ctx, "resume.txt", "txt")
	assert.Error(t, err)
}
