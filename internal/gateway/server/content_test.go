package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"contentforge/internal/gateway/repository/artifact"
	"contentforge/internal/gateway/repository/contentstore"
)

func TestContentHandler_GetAndList(t *testing.T) {
	store := contentstore.New(filepath.Join(t.TempDir(), "content.json"))
	store.Put(contentstore.Record{PipelineID: "pl-1", Title: "T", Markdown: "# T\n"})
	h := NewContentHandler(store, nil)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/api/content/pl-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"T"`)

	rec = httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/api/content/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/content?limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "pl-1")
}

func TestContentHandler_ServesArtifacts(t *testing.T) {
	artifacts, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, artifacts.Put(context.Background(), "pl-1", "article.md", []byte("# hello\n")))

	store := contentstore.New(filepath.Join(t.TempDir(), "content.json"))
	h := NewContentHandler(store, artifacts)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/api/content/pl-1/artifacts/article.md", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "# hello\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/api/content/pl-1/artifacts/missing.md", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/api/content/pl-1/artifacts/..%2Fsecret", nil))
	require.NotEqual(t, http.StatusOK, rec.Code)
}

func TestContentHandler_ArtifactsDisabled(t *testing.T) {
	store := contentstore.New(filepath.Join(t.TempDir(), "content.json"))
	h := NewContentHandler(store, nil)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/api/content/pl-1/artifacts/article.md", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
