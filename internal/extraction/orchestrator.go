// Package extraction orchestrates the two-pass resume extraction pipeline:
// a comprehensive first pass over the whole document, deterministic
// validation and inference, then optional targeted re-extraction of fields
// the caller marked uncertain.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-profiler/internal/catalog"
	"github.com/jonathan/resume-profiler/internal/infer"
	"github.com/jonathan/resume-profiler/internal/ingestion"
	"github.com/jonathan/resume-profiler/internal/llm"
	"github.com/jonathan/resume-profiler/internal/normalize"
	"github.com/jonathan/resume-profiler/internal/prompts"
	"github.com/jonathan/resume-profiler/internal/schemas"
	"github.com/jonathan/resume-profiler/internal/types"
)

// minTextLength is the cleaned-text size below which the text channel is
// considered degraded (scanned or image-heavy documents) and the vision
// output, if any, carries the first pass.
const minTextLength = 40

// UncertainField marks one field for targeted re-extraction in the second
// pass, constrained to a closed option set.
type UncertainField struct {
	Name    string
	Options []string
}

// Store persists jobs and their final records. Implementations must record a
// terminal status per job; no partial record is saved for a failed job.
type Store interface {
	CreateJob(ctx context.Context, sourceName, format string) (uuid.UUID, error)
	CompleteJob(ctx context.Context, jobID uuid.UUID) error
	FailJob(ctx context.Context, jobID uuid.UUID, message string) error
	SaveRecord(ctx context.Context, jobID uuid.UUID, record *types.CandidateRecord, changeLog []string) error
}

// Options configures an Orchestrator.
type Options struct {
	Client llm.Client
	// Store is optional; without it results are only returned to the caller.
	Store    Store
	Catalogs *catalog.Catalogs
	// UserExpertise is the user's own functional-expertise selection. It is
	// authoritative: merged ahead of extracted values, never reordered.
	UserExpertise []string
	// Uncertain lists the fields re-extracted in the second pass. Empty by
	// default: every field it would cover is already handled by validation
	// and inference.
	Uncertain []UncertainField
	// UseVision sends the raw document to the vision model alongside text
	// extraction. Vision failures degrade silently.
	UseVision bool
	// Now supplies the reference time for interval resolution. Defaults to
	// time.Now.
	Now func() time.Time
}

// Result is the outcome of one extraction job.
type Result struct {
	JobID   uuid.UUID
	Record  *types.CandidateRecord
	Log     types.ChangeLog
	RawJSON string
}

// Orchestrator runs extraction jobs. Safe for concurrent use across
// independent jobs: it holds no per-job state.
type Orchestrator struct {
	client    llm.Client
	store     Store
	validator *normalize.Validator
	engine    *infer.Engine
	cats      *catalog.Catalogs
	expertise []string
	uncertain []UncertainField
	useVision bool
	now       func() time.Time
}

// New creates an orchestrator from options. The LLM client is required.
func New(opts Options) (*Orchestrator, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("LLM client is required")
	}
	cats := opts.Catalogs
	if cats == nil {
		var err error
		cats, err = catalog.Load()
		if err != nil {
			return nil, err
		}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Orchestrator{
		client:    opts.Client,
		store:     opts.Store,
		validator: normalize.NewValidator(cats),
		engine:    infer.NewEngine(cats),
		cats:      cats,
		expertise: opts.UserExpertise,
		uncertain: opts.Uncertain,
		useVision: opts.UseVision,
		now:       now,
	}, nil
}

// Run executes the full pipeline for one document. Fatal errors mark the job
// failed and persist nothing; normalization misses and second-pass failures
// are recorded in the change log instead.
func (o *Orchestrator) Run(ctx context.Context, doc *ingestion.Document) (*Result, error) {
	if doc == nil {
		return nil, &DocumentError{Message: "no document provided"}
	}

	jobID, err := o.createJob(ctx, doc)
	if err != nil {
		return nil, err
	}

	result, err := o.run(ctx, jobID, doc)
	if err != nil {
		o.failJob(ctx, jobID, err)
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, jobID uuid.UUID, doc *ingestion.Document) (*Result, error) {
	// Text preparation and the optional vision sub-extraction are
	// independent reads of the document; run them concurrently and join
	// before the first pass.
	var (
		cleanedText string
		textErr     error
		visionJSON  string
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := doc.ExtractText()
		if err != nil {
			textErr = err
			return nil
		}
		cleanedText = ingestion.CleanText(raw)
		return nil
	})
	if o.useVision && doc.Format != ingestion.FormatText {
		g.Go(func() error {
			prompt := prompts.MustGet("extraction.json", "extract-candidate-record-vision")
			out, err := o.client.GenerateVisionJSON(gCtx, prompt, doc.MIMEType(), doc.Data, llm.TierStandard)
			if err != nil {
				// Auxiliary channel: absent on failure.
				return nil
			}
			visionJSON = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rawJSON, err := o.firstPass(ctx, cleanedText, textErr, visionJSON)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateCandidateRecord(rawJSON); err != nil {
		return nil, &RecordError{Message: "extraction output failed schema validation", Cause: err}
	}

	rec, err := types.ParseCandidateRecord([]byte(rawJSON))
	if err != nil {
		return nil, &RecordError{Message: "extraction output is not a candidate record", Cause: err}
	}

	log := o.validator.ValidateRecord(rec)
	log.Merge(o.engine.Infer(rec, o.now()))
	rec.FunctionalExpertise = infer.MergeFunctionalExpertise(o.expertise, rec.FunctionalExpertise, o.cats.FunctionalExpertise, &log)

	o.secondPass(ctx, cleanedText, rec, &log)

	result := &Result{JobID: jobID, Record: rec, Log: log, RawJSON: rawJSON}

	if o.store != nil {
		if err := o.store.SaveRecord(ctx, jobID, rec, log.Entries()); err != nil {
			return nil, err
		}
		if err := o.store.CompleteJob(ctx, jobID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// firstPass produces the raw extraction JSON, preferring the text channel
// and falling back to the vision output for degraded documents.
func (o *Orchestrator) firstPass(ctx context.Context, cleanedText string, textErr error, visionJSON string) (string, error) {
	if textErr != nil || len(cleanedText) < minTextLength {
		if visionJSON != "" {
			return visionJSON, nil
		}
		if textErr != nil {
			return "", &DocumentError{Message: "failed to extract document text", Cause: textErr}
		}
		return "", &DocumentError{Message: "document contains too little text"}
	}

	prompt := prompts.Format(
		prompts.MustGet("extraction.json", "extract-candidate-record"),
		map[string]string{"ResumeText": cleanedText},
	)
	out, err := o.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		if visionJSON != "" {
			return visionJSON, nil
		}
		return "", &APICallError{Message: "first extraction pass failed", Cause: err}
	}
	return out, nil
}

// secondPass re-extracts each uncertain field with a narrow, option-set
// constrained call. Per-field failures are logged and never fail the job.
func (o *Orchestrator) secondPass(ctx context.Context, cleanedText string, rec *types.CandidateRecord, log *types.ChangeLog) {
	for _, field := range o.uncertain {
		if err := o.refineField(ctx, cleanedText, rec, field, log); err != nil {
			log.Addf("%s: second pass failed, keeping prior value: %v", field.Name, err)
		}
	}
}

func (o *Orchestrator) refineField(ctx context.Context, cleanedText string, rec *types.CandidateRecord, field UncertainField, log *types.ChangeLog) error {
	prompt := llm.BuildExtractionPrompt(llm.FieldRefinementSchema(field.Name, field.Options), cleanedText)

	raw, err := o.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return &APICallError{Message: "field refinement call failed", Cause: err}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &payload); err != nil {
		return &RecordError{Message: "field refinement output is not JSON", Cause: err}
	}

	value, _ := payload[field.Name].(string)
	if value == "" {
		// The model found nothing; the prior value stands.
		return nil
	}
	if len(field.Options) > 0 && !containsValue(field.Options, value) {
		return &RecordError{Message: fmt.Sprintf("value %q is outside the option set", value)}
	}

	switch field.Name {
	case "desired_duration_months":
		rec.DesiredDurationMonths = &value
	default:
		return &RecordError{Message: fmt.Sprintf("unsupported second-pass field %q", field.Name)}
	}
	log.Addf("%s: second pass set %q", field.Name, value)
	return nil
}

func (o *Orchestrator) createJob(ctx context.Context, doc *ingestion.Document) (uuid.UUID, error) {
	if o.store == nil {
		return uuid.New(), nil
	}
	return o.store.CreateJob(ctx, doc.Name, string(doc.Format))
}

func (o *Orchestrator) failJob(ctx context.Context, jobID uuid.UUID, cause error) {
	if o.store == nil {
		return
	}
	// Best effort: the original error is what the caller sees.
	_ = o.store.FailJob(ctx, jobID, cause.Error())
}

func containsValue(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
