package tasks

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/library"
	"github.com/caprica/chooui/internal/media"
)

func newTestExecutor(t *testing.T) (*Executor, chan Task, chan event.Event) {
	t.Helper()
	lib, err := library.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("library.Open() error = %v", err)
	}
	t.Cleanup(func() { lib.Close() })

	taskCh := make(chan Task, 16)
	events := make(chan event.Event, 16)
	return NewExecutor(lib, nil, taskCh, events), taskCh, events
}

func nextEvent(t *testing.T, events <-chan event.Event) event.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestExecutorRunsTasksInOrder(t *testing.T) {
	e, taskCh, events := newTestExecutor(t)

	taskCh <- FetchArtists{}
	taskCh <- Search{Query: media.SearchQuery{Any: "nothing"}}
	taskCh <- FetchAlbums{Artist: "Alpha"}
	close(taskCh)
	e.Run()

	if _, ok := nextEvent(t, events).(event.ArtistsLoaded); !ok {
		t.Error("first event is not ArtistsLoaded")
	}
	if _, ok := nextEvent(t, events).(event.SearchResults); !ok {
		t.Error("second event is not SearchResults")
	}
	ev, ok := nextEvent(t, events).(event.AlbumsLoaded)
	if !ok {
		t.Fatal("third event is not AlbumsLoaded")
	}
	if ev.Artist != "Alpha" {
		t.Errorf("AlbumsLoaded.Artist = %q, want Alpha", ev.Artist)
	}
}

func TestExecutorFailureDoesNotStopIt(t *testing.T) {
	e, taskCh, events := newTestExecutor(t)

	taskCh <- RateTrack{DurableID: 1, Rating: 9}
	taskCh <- FetchArtists{}
	close(taskCh)
	e.Run()

	if _, ok := nextEvent(t, events).(event.Error); !ok {
		t.Error("invalid rating did not produce an error event")
	}
	if _, ok := nextEvent(t, events).(event.ArtistsLoaded); !ok {
		t.Error("executor stopped after a failing task")
	}
}

func TestExecutorScanEmptyDirs(t *testing.T) {
	e, taskCh, events := newTestExecutor(t)

	taskCh <- ScanCatalog{}
	close(taskCh)
	e.Run()

	if _, ok := nextEvent(t, events).(event.CatalogScanStarted); !ok {
		t.Error("scan did not start with CatalogScanStarted")
	}
	ev, ok := nextEvent(t, events).(event.CatalogScanFinished)
	if !ok {
		t.Fatal("scan did not emit CatalogScanFinished")
	}
	if ev.Tracks != 0 {
		t.Errorf("CatalogScanFinished.Tracks = %d, want 0", ev.Tracks)
	}
	if _, ok := nextEvent(t, events).(event.CatalogUpdated); !ok {
		t.Error("scan did not finish with CatalogUpdated")
	}
}

func TestExecutorDoneClosesOnExit(t *testing.T) {
	e, taskCh, _ := newTestExecutor(t)

	go e.Run()
	close(taskCh)

	select {
	case <-e.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done() not closed after task channel close")
	}
}
