package extraction

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-profiler/internal/db"
	"github.com/jonathan/resume-profiler/internal/ingestion"
	"github.com/jonathan/resume-profiler/internal/llm"
)

// fakeClient is a scripted llm.Client. It distinguishes first-pass and
// refinement prompts by their preamble.
type fakeClient struct {
	recordJSON string
	recordErr  error
	refineJSON string
	refineErr  error
	visionJSON string
	visionErr  error
	calls      []string
}

func (c *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (c *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if strings.Contains(prompt, "re-examining a single field") {
		c.calls = append(c.calls, "refine")
		return c.refineJSON, c.refineErr
	}
	c.calls = append(c.calls, "first-pass")
	return c.recordJSON, c.recordErr
}

func (c *fakeClient) GenerateVisionJSON(ctx context.Context, prompt string, mimeType string, data []byte, tier llm.ModelTier) (string, error) {
	c.calls = append(c.calls, "vision")
	return c.visionJSON, c.visionErr
}

func (c *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-model" }

func (c *fakeClient) Close() error { return nil }

const sampleRecordJSON = `{
	"first_name": "Jane",
	"last_name": "Doe",
	"email": "jane@example.com",
	"linkedin_url": "linkedin.com/in/janedoe",
	"years_of_experience": 30,
	"education_history": [
		{"university_name": "TU Berlin", "degree_type": "MSc", "end_date": "2018-09"}
	],
	"professional_experience": [
		{"position_name": "Software Engineer", "company_name": "Acme", "start_date": "2019-01", "end_date": "2021-01", "country": "Germany"},
		{"position_name": "Senior Engineer", "company_name": "Acme", "start_date": "2020-06", "is_current": true, "country": "Germany"}
	],
	"functional_expertise": ["software_development", "devops"]
}`

var sampleResume = strings.Repeat("Jane Doe, Software Engineer at Acme in Berlin. ", 4)

func textDocument() *ingestion.Document {
	return &ingestion.Document{
		Name:   "resume.txt",
		Format: ingestion.FormatText,
		Data:   []byte(sampleResume),
	}
}

func fixedClock() time.Time {
	return time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
}

func TestRun_FullPipeline(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{recordJSON: sampleRecordJSON}
	store := db.NewMemoryStore()

	o, err := New(Options{
		Client:        client,
		Store:         store,
		UserExpertise: []string{"data_science"},
		Now:           fixedClock,
	})
	require.NoError(t, err)

	result, err := o.Run(ctx, textDocument())
	require.NoError(t, err)
	require.NotNil(t, result.Record)

	rec := result.Record

	// Field validation ran: URL got a scheme, degree resolved via synonym.
	assert.Equal(t, "https://linkedin.com/in/janedoe", *rec.LinkedInURL)
	assert.Equal(t, "master", *rec.EducationHistory[0].DegreeType)

	// Inference ran: derived years replace the reported 30, position types
	// filled, single work country adopted as desired location.
	assert.Equal(t, 5, *rec.YearsOfExperience)
	assert.Equal(t, "full_time", *rec.ProfessionalExperience[0].PositionType)
	assert.Equal(t, []string{"germany"}, rec.DesiredLocations)

	// User expertise is authoritative and leads the merged list; appended
	// extracted values show up in the change log like every other correction.
	assert.Equal(t, []string{"data_science", "software_development", "devops"}, rec.FunctionalExpertise)
	assert.Contains(t, result.Log.Entries(), `functional_expertise: added extracted value "software_development"`)

	assert.Greater(t, result.Log.Len(), 0)

	// Job completed and record persisted.
	job, err := store.GetJob(ctx, result.JobID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCompleted, job.Status)

	saved, changeLog, err := store.GetRecord(ctx, result.JobID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, result.Log.Entries(), changeLog)
}

// recordingStore remembers the last created job ID so failure paths can be
// inspected.
type recordingStore struct {
	*db.MemoryStore
	lastJobID uuid.UUID
}

func (s *recordingStore) CreateJob(ctx context.Context, sourceName, format string) (uuid.UUID, error) {
	id, err := s.MemoryStore.CreateJob(ctx, sourceName, format)
	s.lastJobID = id
	return id, err
}

func TestRun_InvalidOutputFailsJob(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{recordJSON: `["not", "a", "record"]`}
	store := &recordingStore{MemoryStore: db.NewMemoryStore()}

	o, err := New(Options{Client: client, Store: store, Now: fixedClock})
	require.NoError(t, err)

	_, err = o.Run(ctx, textDocument())
	require.Error(t, err)

	var recordErr *RecordError
	assert.ErrorAs(t, err, &recordErr)

	job, err := store.GetJob(ctx, store.lastJobID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusFailed, job.Status)
	require.NotNil(t, job.ErrorMessage)

	// Nothing persisted for the failed job.
	saved, _, err := store.GetRecord(ctx, store.lastJobID)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestRun_FatalErrorMarksJobFailed(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{recordErr: fmt.Errorf("model unavailable")}
	store := &recordingStore{MemoryStore: db.NewMemoryStore()}

	o, err := New(Options{Client: client, Store: store, Now: fixedClock})
	require.NoError(t, err)

	_, err = o.Run(ctx, textDocument())
	require.Error(t, err)

	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)

	job, err := store.GetJob(ctx, store.lastJobID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusFailed, job.Status)
}

func TestRun_VisionFallbackForUnreadableText(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{visionJSON: sampleRecordJSON}

	o, err := New(Options{Client: client, UseVision: true, Now: fixedClock})
	require.NoError(t, err)

	// Corrupt PDF: the text channel fails, the vision output carries the
	// first pass.
	doc := &ingestion.Document{
		Name:   "scan.pdf",
		Format: ingestion.FormatPDF,
		Data:   []byte("%PDF corrupt"),
	}

	result, err := o.Run(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, "Jane", *result.Record.FirstName)
	assert.Contains(t, client.calls, "vision")
	assert.NotContains(t, client.calls, "first-pass")
}

func TestRun_UnreadableDocumentWithoutVisionIsFatal(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	store := db.NewMemoryStore()

	o, err := New(Options{Client: client, Store: store, Now: fixedClock})
	require.NoError(t, err)

	doc := &ingestion.Document{
		Name:   "scan.pdf",
		Format: ingestion.FormatPDF,
		Data:   []byte("%PDF corrupt"),
	}

	result, err := o.Run(ctx, doc)
	require.Error(t, err)
	assert.Nil(t, result)

	var docErr *DocumentError
	assert.ErrorAs(t, err, &docErr)
}

func TestRun_VisionFailureDegradesSilently(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		recordJSON: sampleRecordJSON,
		visionErr:  fmt.Errorf("vision timeout"),
	}

	o, err := New(Options{Client: client, UseVision: true, Now: fixedClock})
	require.NoError(t, err)

	doc := &ingestion.Document{
		Name:   "resume.docx",
		Format: ingestion.FormatText, // text format skips the vision branch
		Data:   []byte(sampleResume),
	}

	result, err := o.Run(ctx, doc)
	require.NoError(t, err)
	assert.NotNil(t, result.Record)
}

func TestRun_SecondPassOverwritesField(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		recordJSON: sampleRecordJSON,
		refineJSON: `{"desired_duration_months": "6-12"}`,
	}

	o, err := New(Options{
		Client: client,
		Now:    fixedClock,
		Uncertain: []UncertainField{
			{Name: "desired_duration_months", Options: []string{"1-3", "3-6", "6-12", "12+"}},
		},
	})
	require.NoError(t, err)

	result, err := o.Run(ctx, textDocument())
	require.NoError(t, err)

	require.NotNil(t, result.Record.DesiredDurationMonths)
	assert.Equal(t, "6-12", *result.Record.DesiredDurationMonths)
	assert.Contains(t, client.calls, "refine")
}

func TestRun_SecondPassFailureKeepsJobAlive(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		recordJSON: sampleRecordJSON,
		refineErr:  fmt.Errorf("model unavailable"),
	}
	store := db.NewMemoryStore()

	o, err := New(Options{
		Client: client,
		Store:  store,
		Now:    fixedClock,
		Uncertain: []UncertainField{
			{Name: "desired_duration_months", Options: []string{"1-3", "3-6", "6-12", "12+"}},
		},
	})
	require.NoError(t, err)

	result, err := o.Run(ctx, textDocument())
	require.NoError(t, err)

	assert.Nil(t, result.Record.DesiredDurationMonths)

	failed := false
	for _, entry := range result.Log.Entries() {
		if strings.Contains(entry, "second pass failed") {
			failed = true
		}
	}
	assert.True(t, failed, "second-pass failure should be logged")

	job, err := store.GetJob(ctx, result.JobID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCompleted, job.Status)
}

func TestRun_SecondPassRejectsValueOutsideOptionSet(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		recordJSON: sampleRecordJSON,
		refineJSON: `{"desired_duration_months": "24+"}`,
	}

	o, err := New(Options{
		Client: client,
		Now:    fixedClock,
		Uncertain: []UncertainField{
			{Name: "desired_duration_months", Options: []string{"1-3", "3-6", "6-12", "12+"}},
		},
	})
	require.NoError(t, err)

	result, err := o.Run(ctx, textDocument())
	require.NoError(t, err)
	assert.Nil(t, result.Record.DesiredDurationMonths)
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
