package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"contentforge/internal/gateway/repository/artifact"
	"contentforge/internal/gateway/repository/contentstore"
)

// ContentHandler serves persisted generation results and their stored
// artifacts.
type ContentHandler struct {
	contents  *contentstore.Store
	artifacts artifact.Store // nil when artifact storage is disabled
}

func NewContentHandler(contents *contentstore.Store, artifacts artifact.Store) *ContentHandler {
	return &ContentHandler{contents: contents, artifacts: artifacts}
}

// HandleGet serves GET /api/content/{pipelineID} and
// GET /api/content/{pipelineID}/artifacts/{name}.
func (h *ContentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/content/")
	if id, name, ok := strings.Cut(rest, "/artifacts/"); ok {
		h.serveArtifact(w, r, id, name)
		return
	}
	if rest == "" || strings.Contains(rest, "/") {
		http.Error(w, "pipeline id is required", http.StatusBadRequest)
		return
	}
	rec, ok := h.contents.Get(rest)
	if !ok {
		http.Error(w, "content not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

func (h *ContentHandler) serveArtifact(w http.ResponseWriter, r *http.Request, id, name string) {
	if h.artifacts == nil {
		http.Error(w, "artifact storage is disabled", http.StatusNotFound)
		return
	}
	if id == "" || name == "" {
		http.Error(w, "pipeline id and artifact name are required", http.StatusBadRequest)
		return
	}
	if strings.Contains(name, "..") || strings.Contains(name, "/") {
		http.Error(w, "invalid artifact name", http.StatusBadRequest)
		return
	}
	data, err := h.artifacts.Get(r.Context(), id, name)
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			http.Error(w, "artifact not found", http.StatusNotFound)
			return
		}
		http.Error(w, "artifact fetch failed", http.StatusBadGateway)
		return
	}
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(data)
}

// HandleList serves GET /api/content?limit=N, newest first.
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	recs := h.contents.List(limit)
	if recs == nil {
		recs = []contentstore.Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(recs)
}
