package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"contentforge/internal/gateway/repository/artifact"
	"contentforge/internal/gateway/repository/contentstore"
	"contentforge/internal/pipeline"
	t "contentforge/internal/types"
	"contentforge/internal/util/jsonutil"
)

// GenerateHandler invokes the pipeline and persists its result. It is the
// "caller" side of the pipeline boundary: the orchestrator itself never
// touches the stores.
type GenerateHandler struct {
	orch      *pipeline.Orchestrator
	contents  *contentstore.Store
	artifacts artifact.Store // nil when artifact storage is disabled
	hub       *RunHub
}

func NewGenerateHandler(orch *pipeline.Orchestrator, contents *contentstore.Store, artifacts artifact.Store, hub *RunHub) *GenerateHandler {
	return &GenerateHandler{orch: orch, contents: contents, artifacts: artifacts, hub: hub}
}

// HandleGenerate streams pipeline progress as newline-delimited JSON, one
// record per event, flushed per event and in emission order. The terminal
// complete record carries the full ContentOutput under data; a terminal
// error record carries only a message. The stream is closed exactly once,
// and an orchestrator panic surfaces as a synthetic error record rather
// than a silently truncated stream.
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in t.PipelineInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	flusher, _ := w.(http.Flusher)

	enc := json.NewEncoder(w)
	writeEvent := func(ev pipeline.Event) {
		if err := enc.Encode(ev); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	pipelineID := uuid.NewString()
	h.hub.Allocate(pipelineID)
	defer h.hub.Complete(pipelineID)

	// Hold back the terminal complete event: at the transport boundary it
	// carries the full output, which is only on the result.
	var pending *pipeline.Event
	onProgress := func(ev pipeline.Event) {
		h.hub.Publish(pipelineID, ev)
		if ev.Type == pipeline.EventComplete {
			pending = &ev
			return
		}
		writeEvent(ev)
	}

	result := h.runGuarded(r.Context(), pipelineID, in, onProgress)

	if result.Success && result.Output != nil {
		h.persist(r.Context(), in, result)
	}
	if pending != nil {
		ev := *pending
		ev.Data = map[string]any{
			"pipelineId": result.PipelineID,
			"duration":   result.Duration.String(),
			"output":     result.Output,
		}
		writeEvent(ev)
	}
}

// runGuarded converts anything the orchestrator could let escape into a
// synthetic terminal error event, so the stream always ends with a terminal
// record.
func (h *GenerateHandler) runGuarded(ctx context.Context, pipelineID string, in t.PipelineInput, onProgress pipeline.OnProgress) (result pipeline.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline %s: unhandled panic: %v", pipelineID, r)
			result = pipeline.Result{PipelineID: pipelineID, Error: "internal error"}
			onProgress(pipeline.Event{
				Type:      pipeline.EventError,
				Message:   "internal error",
				Timestamp: time.Now().UTC(),
			})
		}
	}()
	return h.orch.RunWithID(ctx, pipelineID, in, onProgress)
}

func (h *GenerateHandler) persist(ctx context.Context, in t.PipelineInput, result pipeline.Result) {
	out := result.Output
	normalized, err := jsonutil.MarshalNoEscape(out.Record)
	if err != nil {
		normalized = []byte("{}")
	}
	h.contents.Put(contentstore.Record{
		PipelineID:       result.PipelineID,
		Topic:            in.Topic,
		TargetKeyword:    in.TargetKeyword,
		Title:            out.Record.Meta.Title,
		Markdown:         out.Markdown,
		HTML:             out.HTML,
		NormalizedJSON:   string(normalized),
		WordCount:        out.WordCount,
		ReadabilityScore: out.Record.Meta.ReadabilityScore,
		SEOScore:         out.Record.Meta.SEOScore,
		CreatedAt:        time.Now().UTC(),
	})
	if h.artifacts == nil {
		return
	}
	for name, data := range map[string][]byte{
		"article.md":   []byte(out.Markdown),
		"article.html": []byte(out.HTML),
		"record.json":  normalized,
	} {
		if err := h.artifacts.Put(ctx, result.PipelineID, name, data); err != nil {
			log.Printf("pipeline %s: artifact %s not stored: %v", result.PipelineID, name, err)
		}
	}
}
