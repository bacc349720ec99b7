package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	runWSWriteWait = 10 * time.Second
	runWSPongWait  = 60 * time.Second
	runWSPingEvery = (runWSPongWait * 9) / 10
)

var runWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// WatchHandler streams a run's progress events over a websocket: buffered
// events are replayed first, then live events follow in emission order until
// the run's terminal event closes the stream.
type WatchHandler struct {
	hub *RunHub
}

func NewWatchHandler(hub *RunHub) *WatchHandler {
	return &WatchHandler{hub: hub}
}

func (h *WatchHandler) HandleRunWS(w http.ResponseWriter, r *http.Request) {
	pipelineID := strings.TrimSpace(r.URL.Query().Get("pipeline_id"))
	if pipelineID == "" {
		http.Error(w, "pipeline_id is required", http.StatusBadRequest)
		return
	}
	replay, live, cancel, ok := h.hub.Subscribe(pipelineID)
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	defer cancel()

	conn, err := runWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(runWSPongWait)); err != nil {
		log.Printf("run ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(runWSPongWait))
	})

	// Drain client frames so pong handling keeps working; the watch stream
	// is one-way.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(v any) error {
		if err := conn.SetWriteDeadline(time.Now().Add(runWSWriteWait)); err != nil {
			return err
		}
		return conn.WriteJSON(v)
	}

	for _, ev := range replay {
		if err := write(ev); err != nil {
			return
		}
	}

	ticker := time.NewTicker(runWSPingEvery)
	defer ticker.Stop()
	for {
		select {
		case ev, more := <-live:
			if !more {
				_ = conn.SetWriteDeadline(time.Now().Add(runWSWriteWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"))
				return
			}
			if err := write(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(runWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readerDone:
			return
		}
	}
}
