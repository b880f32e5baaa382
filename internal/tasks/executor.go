// Package tasks runs the background task executor: a goroutine that
// owns the writable library handle and serializes catalog work
// (scanning, queries, statistics) off the dispatcher loop.
package tasks

import (
	"fmt"

	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/library"
	"github.com/caprica/chooui/internal/media"
)

// Task is the marker interface for executor tasks. Tasks run strictly
// in submission order; results come back as events.
type Task interface {
	isTask()
}

// ScanCatalog scans the configured media directories into the catalog.
type ScanCatalog struct{}

// Search runs a library search.
type Search struct {
	Query media.SearchQuery
}

// FetchArtists loads the artist list for the browser.
type FetchArtists struct{}

// FetchAlbums loads the albums of one artist.
type FetchAlbums struct {
	Artist string
}

// FetchTracks loads the tracks of one album.
type FetchTracks struct {
	Artist string
	Album  string
}

// CollectArtist gathers every track by an artist for queueing.
type CollectArtist struct {
	Artist string
}

// CollectAlbum gathers every track of an album for queueing.
type CollectAlbum struct {
	Artist string
	Album  string
}

// CollectTrack gathers one track by library ID for queueing.
type CollectTrack struct {
	ID int64
}

// RecordPlay increments a track's play count.
type RecordPlay struct {
	DurableID uint64
}

// RateTrack stores a track rating.
type RateTrack struct {
	DurableID uint64
	Rating    media.Rating
}

func (ScanCatalog) isTask()   {}
func (Search) isTask()        {}
func (FetchArtists) isTask()  {}
func (FetchAlbums) isTask()   {}
func (FetchTracks) isTask()   {}
func (CollectArtist) isTask() {}
func (CollectAlbum) isTask()  {}
func (CollectTrack) isTask()  {}
func (RecordPlay) isTask()    {}
func (RateTrack) isTask()     {}

// Executor drains the task channel one task at a time. A failing task
// produces a recoverable error event and does not stop the executor.
type Executor struct {
	lib       *library.Library
	mediaDirs []string
	tasks     <-chan Task
	events    chan<- event.Event
	done      chan struct{}
}

// NewExecutor creates a task executor. Call Run on its own goroutine.
func NewExecutor(lib *library.Library, mediaDirs []string, tasks <-chan Task, events chan<- event.Event) *Executor {
	return &Executor{
		lib:       lib,
		mediaDirs: mediaDirs,
		tasks:     tasks,
		events:    events,
		done:      make(chan struct{}),
	}
}

// Done is closed when the executor has terminated; task senders use it
// to detect a dead receiver.
func (e *Executor) Done() <-chan struct{} {
	return e.done
}

// Run executes tasks until the task channel is closed.
func (e *Executor) Run() {
	defer close(e.done)
	for t := range e.tasks {
		if err := e.execute(t); err != nil {
			e.events <- event.Error{Err: fmt.Errorf("task %T: %w", t, err)}
		}
	}
}

func (e *Executor) execute(t Task) error {
	switch t := t.(type) {
	case ScanCatalog:
		_, err := e.lib.Scan(e.mediaDirs, e.emitScanEvent)
		if err != nil {
			return err
		}
		e.events <- event.CatalogUpdated{}
		return nil

	case Search:
		tracks, err := e.lib.Search(t.Query)
		if err != nil {
			return err
		}
		e.events <- event.SearchResults{Tracks: tracks}
		return nil

	case FetchArtists:
		artists, err := e.lib.Artists()
		if err != nil {
			return err
		}
		e.events <- event.ArtistsLoaded{Artists: artists}
		return nil

	case FetchAlbums:
		albums, err := e.lib.Albums(t.Artist)
		if err != nil {
			return err
		}
		e.events <- event.AlbumsLoaded{Artist: t.Artist, Albums: albums}
		return nil

	case FetchTracks:
		tracks, err := e.lib.AlbumTracks(t.Artist, t.Album)
		if err != nil {
			return err
		}
		e.events <- event.TracksLoaded{Tracks: tracks}
		return nil

	case CollectArtist:
		tracks, err := e.lib.ArtistTracks(t.Artist)
		if err != nil {
			return err
		}
		e.events <- event.AddTracksToQueue{Tracks: tracks}
		return nil

	case CollectAlbum:
		tracks, err := e.lib.AlbumTracks(t.Artist, t.Album)
		if err != nil {
			return err
		}
		e.events <- event.AddTracksToQueue{Tracks: tracks}
		return nil

	case CollectTrack:
		track, err := e.lib.TrackByID(t.ID)
		if err != nil {
			return err
		}
		e.events <- event.AddTracksToQueue{Tracks: []media.Track{*track}}
		return nil

	case RecordPlay:
		return e.lib.RecordPlay(t.DurableID)

	case RateTrack:
		return e.lib.SetRating(t.DurableID, t.Rating)

	default:
		return fmt.Errorf("unknown task %T", t)
	}
}

// emitScanEvent forwards scanner progress onto the event channel.
func (e *Executor) emitScanEvent(ev library.ScanEvent) {
	switch ev := ev.(type) {
	case library.ScanStarted:
		e.events <- event.CatalogScanStarted{}
	case library.DirStarted:
		e.events <- event.CatalogDirStarted{Dir: ev.Dir}
	case library.FileProcessed:
		e.events <- event.CatalogFileProcessed{Count: ev.Count, Path: ev.Path}
	case library.DirFinished:
		e.events <- event.CatalogDirFinished{Dir: ev.Dir}
	case library.ScanFinished:
		e.events <- event.CatalogScanFinished{Tracks: ev.Tracks}
	}
}
