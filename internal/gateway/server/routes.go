package server

import (
	"net/http"

	"contentforge/internal/gateway/middleware"
)

func NewMux(
	generateHandler *GenerateHandler,
	contentHandler *ContentHandler,
	watchHandler *WatchHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/generate", generateHandler.HandleGenerate)
	mux.HandleFunc("/api/runs", generateHandler.HandleStartRun)
	mux.HandleFunc("/api/content", contentHandler.HandleList)
	mux.HandleFunc("/api/content/", contentHandler.HandleGet)
	mux.HandleFunc("/ws/runs", watchHandler.HandleRunWS)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.CORS(mux)
}
