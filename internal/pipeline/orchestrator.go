package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"contentforge/internal/llm"
	t "contentforge/internal/types"
)

// ValidationError reports a missing required input field. The pipeline never
// starts when validation fails.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pipeline: required field %q is empty", e.Field)
}

// StageFailure wraps the cause of a failed stage.
type StageFailure struct {
	Stage Stage
	Cause error
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Cause)
}
func (e *StageFailure) Unwrap() error { return e.Cause }

// Orchestrator drives the six stages in fixed order, threading each stage's
// output into the next. Retry policy lives in the llm middleware chain, not
// here; the orchestrator itself never loops or branches.
type Orchestrator struct {
	brand  *BrandAnalyst
	plan   *ContentPlanner
	write  *Writer
	edit   *Editor
	schema *SchemaGenerator
	render Renderer

	callTimeout time.Duration
	logger      *log.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCallTimeout overrides the per-stage call deadline. Timeouts are
// per-call, not pipeline-wide; a slow stage fails alone.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.callTimeout = d }
}

func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func NewOrchestrator(tm *llm.Caller, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		brand:       &BrandAnalyst{TM: tm},
		plan:        &ContentPlanner{TM: tm},
		write:       &Writer{TM: tm},
		edit:        &Editor{TM: tm},
		schema:      &SchemaGenerator{TM: tm},
		callTimeout: llm.DefaultCallTimeout,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the pipeline to its terminal event. onProgress may be nil;
// the full event log is attached to the result either way. Run never panics
// past its boundary: every failure path, including a panicking stage,
// becomes a terminal error event plus a failed result.
func (o *Orchestrator) Run(ctx context.Context, in t.PipelineInput, onProgress OnProgress) Result {
	return o.RunWithID(ctx, uuid.NewString(), in, onProgress)
}

// RunWithID is Run with a caller-minted pipeline id, for callers that need
// the id before the first event flows (e.g. to register a watch channel).
func (o *Orchestrator) RunWithID(ctx context.Context, pipelineID string, in t.PipelineInput, onProgress OnProgress) (result Result) {
	start := time.Now()
	result.PipelineID = pipelineID

	emit := func(ev Event) {
		ev.Timestamp = time.Now().UTC()
		result.Events = append(result.Events, ev)
		o.logger.Printf("pipeline %s: %s %s (%d%%) %s",
			result.PipelineID, ev.Type, ev.Stage, ev.Progress, ev.Message)
		if onProgress != nil {
			onProgress(ev)
		}
	}

	progress := 0
	fail := func(stage Stage, err error) Result {
		sf := &StageFailure{Stage: stage, Cause: err}
		result.Success = false
		result.Error = failureMessage(sf)
		result.Duration = time.Since(start)
		emit(Event{
			Type:     EventError,
			Stage:    stage.String(),
			Status:   StatusFailed,
			Message:  result.Error,
			Progress: progress,
		})
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Error = fmt.Sprintf("internal pipeline error: %v", r)
			result.Duration = time.Since(start)
			emit(Event{Type: EventError, Message: result.Error, Progress: progress})
		}
	}()

	if err := validate(in); err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		emit(Event{Type: EventError, Message: result.Error, Progress: 0})
		return result
	}
	in = in.WithDefaults()

	record := func(stage Stage, v any) {
		result.Stages = append(result.Stages, StageRecord{Stage: stage.String(), Result: v})
	}
	running := func(stage Stage) {
		spec := specFor(stage)
		progress = progressBefore(stage)
		emit(Event{
			Type:     EventProgress,
			Stage:    stage.String(),
			Status:   StatusRunning,
			Message:  spec.Title,
			Progress: progress,
		})
	}
	completed := func(stage Stage, message string, data any) {
		progress = progressAfter(stage)
		emit(Event{
			Type:     EventStageComplete,
			Stage:    stage.String(),
			Status:   StatusCompleted,
			Message:  message,
			Progress: progress,
			Data:     data,
		})
	}

	// Stage 1: brand analysis. The only recoverable stage: a generic but
	// complete article beats no article, so failure substitutes a synthetic
	// analysis instead of aborting.
	running(StageBrandAnalysis)
	brand, err := o.brand.Run(ctx, in, o.callTimeout)
	if err != nil {
		if !specFor(StageBrandAnalysis).Recoverable {
			return fail(StageBrandAnalysis, err)
		}
		o.logger.Printf("pipeline %s: brand analysis failed (%v), using fallback", result.PipelineID, err)
		brand = FallbackBrandAnalysis(in)
		record(StageBrandAnalysis, brand)
		completed(StageBrandAnalysis, "Brand analysis unavailable, using generic voice", map[string]any{
			"fallback": true,
			"summary":  brand.Summary,
		})
	} else {
		record(StageBrandAnalysis, brand)
		completed(StageBrandAnalysis, "Brand voice analyzed", map[string]any{"summary": brand.Summary})
	}

	// Stage 2: content plan.
	running(StageContentPlan)
	plan, err := o.plan.Run(ctx, in, brand, o.callTimeout)
	if err != nil {
		return fail(StageContentPlan, err)
	}
	record(StageContentPlan, plan)
	completed(StageContentPlan, "Content plan ready", map[string]any{
		"title":    plan.Title,
		"sections": len(plan.Sections),
	})

	// Stage 3: draft.
	running(StageWriting)
	draft, err := o.write.Run(ctx, plan, brand, o.callTimeout)
	if err != nil {
		return fail(StageWriting, err)
	}
	record(StageWriting, draft)
	completed(StageWriting, "Draft written", map[string]any{"wordCount": draft.TotalWordCount})

	// Stage 4: edit and score.
	running(StageEditing)
	edited, err := o.edit.Run(ctx, draft, brand, in.TargetKeyword, o.callTimeout)
	if err != nil {
		return fail(StageEditing, err)
	}
	record(StageEditing, edited)
	completed(StageEditing, "Draft edited and scored", map[string]any{
		"readabilityScore": edited.ReadabilityScore,
		"seoScore":         edited.SEOScore,
	})

	// Stage 5: structured markup.
	running(StageSchema)
	schema, err := o.schema.Run(ctx, edited, in, o.callTimeout)
	if err != nil {
		return fail(StageSchema, err)
	}
	record(StageSchema, schema)
	completed(StageSchema, "Structured markup generated", map[string]any{
		"headline": schema.Article.Headline,
	})

	// Stage 6: deterministic rendering. Renderer failures are fatal like any
	// other non-recoverable stage.
	running(StageOutput)
	output, err := o.render.Run(edited, schema)
	if err != nil {
		return fail(StageOutput, err)
	}
	record(StageOutput, output)
	completed(StageOutput, "Output rendered", map[string]any{"wordCount": output.WordCount})

	result.Success = true
	result.Output = &output
	result.Duration = time.Since(start)
	emit(Event{
		Type:     EventComplete,
		Message:  "Content generation complete",
		Progress: 100,
		Data: map[string]any{
			"pipelineId": result.PipelineID,
			"duration":   result.Duration.String(),
			"summary":    plan.Title,
		},
	})
	return result
}

func validate(in t.PipelineInput) error {
	if in.Topic == "" {
		return &ValidationError{Field: "topic"}
	}
	if in.TargetKeyword == "" {
		return &ValidationError{Field: "target_keyword"}
	}
	return nil
}

// failureMessage keeps user-visible messages short and classified; raw model
// text never leaks past the MalformedOutputError excerpt in logs.
func failureMessage(sf *StageFailure) string {
	spec := specFor(sf.Stage)
	switch llm.Classify(sf.Cause) {
	case llm.KindTimeout:
		return fmt.Sprintf("%s timed out; please try again", spec.Title)
	case llm.KindRateLimited:
		return fmt.Sprintf("%s was rate limited; please try again shortly", spec.Title)
	case llm.KindInvalidCredentials:
		return fmt.Sprintf("%s failed: model credentials rejected", spec.Title)
	case llm.KindModelUnavailable:
		return fmt.Sprintf("%s failed: model unavailable", spec.Title)
	case llm.KindMalformedOutput:
		return fmt.Sprintf("%s produced unreadable output", spec.Title)
	default:
		return sf.Error()
	}
}
