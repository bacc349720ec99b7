package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"contentforge/internal/pipeline"
	t "contentforge/internal/types"
)

// HandleStartRun starts a pipeline run in the background and returns the
// pipeline id immediately. Progress is watched over /ws/runs.
func (h *GenerateHandler) HandleStartRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in t.PipelineInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	pipelineID := uuid.NewString()
	h.hub.Allocate(pipelineID)

	go func() {
		// Background runs outlive the start request; they stop on their own
		// per-call deadlines, not the request's.
		ctx := context.Background()
		defer h.hub.Complete(pipelineID)
		result := h.runGuarded(ctx, pipelineID, in, func(ev pipeline.Event) {
			h.hub.Publish(pipelineID, ev)
		})
		if result.Success && result.Output != nil {
			h.persist(ctx, in, result)
		}
		log.Printf("pipeline %s: finished (success=%v, %s)", pipelineID, result.Success, result.Duration)
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"pipelineId": pipelineID})
}
