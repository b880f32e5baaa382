package main

import (
	"testing"
	"time"

	"github.com/caprica/chooui/internal/event"
)

func TestDrainEventsUnblocksPendingSender(t *testing.T) {
	events := make(chan event.Event, 1)
	events <- event.CatalogFileProcessed{Count: 1}

	// A sender with far more events than the channel buffers, as a
	// catalog scan produces when the UI quits mid-scan.
	done := make(chan struct{})
	go func() {
		for i := range 64 {
			events <- event.CatalogFileProcessed{Count: i}
		}
		close(done)
	}()

	finished := make(chan struct{})
	go func() {
		drainEvents(events, done)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("drainEvents did not unblock the sender")
	}
}
