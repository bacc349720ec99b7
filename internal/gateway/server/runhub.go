package server

import (
	"strings"
	"sync"
	"time"

	"contentforge/internal/pipeline"
)

// completedRunRetention keeps a finished run's event log around long enough
// for late watchers to fetch the terminal state.
const completedRunRetention = 30 * time.Second

const subscriberBuffer = 256

// RunHub tracks in-flight pipeline runs and fans their events out to
// websocket watchers. Events are delivered to each subscriber in emission
// order; a subscriber too slow to keep up is dropped whole rather than
// receiving a gapped stream.
type RunHub struct {
	mu   sync.RWMutex
	runs map[string]*runState
}

type runState struct {
	events []pipeline.Event
	subs   map[chan pipeline.Event]struct{}
	done   bool
}

func NewRunHub() *RunHub {
	return &RunHub{runs: make(map[string]*runState)}
}

func (h *RunHub) Allocate(pipelineID string) {
	pipelineID = strings.TrimSpace(pipelineID)
	if pipelineID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.runs[pipelineID]; !ok {
		h.runs[pipelineID] = &runState{subs: make(map[chan pipeline.Event]struct{})}
	}
}

func (h *RunHub) Publish(pipelineID string, ev pipeline.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.runs[strings.TrimSpace(pipelineID)]
	if !ok || st.done {
		return
	}
	st.events = append(st.events, ev)
	for ch := range st.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber fell behind; drop it entirely so it never sees a
			// reordered or gapped stream.
			delete(st.subs, ch)
			close(ch)
		}
	}
}

// Complete marks the run finished, closes subscriber channels, and schedules
// cleanup after the retention window.
func (h *RunHub) Complete(pipelineID string) {
	pipelineID = strings.TrimSpace(pipelineID)
	h.mu.Lock()
	st, ok := h.runs[pipelineID]
	if ok && !st.done {
		st.done = true
		for ch := range st.subs {
			close(ch)
		}
		st.subs = make(map[chan pipeline.Event]struct{})
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	time.AfterFunc(completedRunRetention, func() {
		h.mu.Lock()
		delete(h.runs, pipelineID)
		h.mu.Unlock()
	})
}

// Subscribe returns the events emitted so far plus a channel of subsequent
// ones. The channel is closed on run completion (or when the subscriber is
// dropped). cancel must be called when the watcher goes away.
func (h *RunHub) Subscribe(pipelineID string) (replay []pipeline.Event, ch chan pipeline.Event, cancel func(), ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, found := h.runs[strings.TrimSpace(pipelineID)]
	if !found {
		return nil, nil, nil, false
	}
	replay = append([]pipeline.Event(nil), st.events...)
	if st.done {
		done := make(chan pipeline.Event)
		close(done)
		return replay, done, func() {}, true
	}
	ch = make(chan pipeline.Event, subscriberBuffer)
	st.subs[ch] = struct{}{}
	cancel = func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, still := st.subs[ch]; still {
			delete(st.subs, ch)
			close(ch)
		}
	}
	return replay, ch, cancel, true
}
