package server

import (
	"fmt"
	"testing"

	"contentforge/internal/pipeline"
)

func ev(n int) pipeline.Event {
	return pipeline.Event{Type: pipeline.EventProgress, Message: fmt.Sprintf("e%d", n), Progress: n}
}

func TestRunHub_ReplayThenLive(t *testing.T) {
	hub := NewRunHub()
	hub.Allocate("pl-1")
	hub.Publish("pl-1", ev(1))
	hub.Publish("pl-1", ev(2))

	replay, ch, cancel, ok := hub.Subscribe("pl-1")
	if !ok {
		t.Fatal("expected subscription")
	}
	defer cancel()
	if len(replay) != 2 || replay[0].Progress != 1 || replay[1].Progress != 2 {
		t.Fatalf("unexpected replay %+v", replay)
	}

	hub.Publish("pl-1", ev(3))
	got := <-ch
	if got.Progress != 3 {
		t.Fatalf("expected live event 3, got %d", got.Progress)
	}
}

func TestRunHub_CompleteClosesSubscribers(t *testing.T) {
	hub := NewRunHub()
	hub.Allocate("pl-1")
	_, ch, cancel, ok := hub.Subscribe("pl-1")
	if !ok {
		t.Fatal("expected subscription")
	}
	defer cancel()

	hub.Complete("pl-1")
	if _, open := <-ch; open {
		t.Fatal("channel must be closed on completion")
	}

	// Late subscribers within the retention window still see the full replay
	// and an already-closed channel.
	hub.Publish("pl-1", ev(9)) // ignored after completion
	replay, done, _, ok := hub.Subscribe("pl-1")
	if !ok {
		t.Fatal("completed run must stay subscribable during retention")
	}
	if len(replay) != 0 {
		t.Fatalf("publish after completion must be dropped, got %d events", len(replay))
	}
	if _, open := <-done; open {
		t.Fatal("expected a closed channel for a finished run")
	}
}

func TestRunHub_UnknownRun(t *testing.T) {
	hub := NewRunHub()
	if _, _, _, ok := hub.Subscribe("missing"); ok {
		t.Fatal("unknown run must not be subscribable")
	}
	// Publishing to an unknown run is a no-op, not a panic.
	hub.Publish("missing", ev(1))
}

func TestRunHub_SlowSubscriberDroppedWhole(t *testing.T) {
	hub := NewRunHub()
	hub.Allocate("pl-1")
	_, ch, cancel, ok := hub.Subscribe("pl-1")
	if !ok {
		t.Fatal("expected subscription")
	}
	defer cancel()

	// Overflow the buffer without draining. The subscriber must be dropped
	// and its channel closed instead of receiving a gapped stream.
	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Publish("pl-1", ev(i))
	}
	seen := 0
	for range ch {
		seen++
	}
	if seen != subscriberBuffer {
		t.Fatalf("expected exactly the buffered prefix (%d), got %d", subscriberBuffer, seen)
	}
}

func TestRunHub_CancelIsIdempotent(t *testing.T) {
	hub := NewRunHub()
	hub.Allocate("pl-1")
	_, _, cancel, ok := hub.Subscribe("pl-1")
	if !ok {
		t.Fatal("expected subscription")
	}
	cancel()
	cancel()
	hub.Publish("pl-1", ev(1)) // must not panic on the removed channel
}
