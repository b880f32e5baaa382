// Package event defines the closed set of application events processed
// by the dispatcher. Events arrive from the UI, the audio engine worker
// and the task executor over a single FIFO channel.
package event

import (
	"time"

	"github.com/caprica/chooui/internal/media"
	"github.com/caprica/chooui/internal/player"
)

// Event is the marker interface implemented by every application event.
type Event interface {
	isEvent()
}

// Playback requests (UI -> dispatcher)

// PlayTrackRequested plays one ad-hoc track immediately, independent of
// the queue position.
type PlayTrackRequested struct {
	Track media.Track
}

// PlayPlaylistRequested switches to playlist-driven sequencing and
// starts the first queued track if nothing is current.
type PlayPlaylistRequested struct{}

// TogglePauseRequested flips pause on the engine.
type TogglePauseRequested struct{}

// StopRequested stops the engine.
type StopRequested struct{}

// ToggleMuteRequested flips mute on the engine.
type ToggleMuteRequested struct{}

// SeekRequested seeks relative to the current position.
type SeekRequested struct {
	Delta time.Duration
}

// AdjustVolumeRequested changes the volume relative to the current
// level; the engine clamps the range.
type AdjustVolumeRequested struct {
	Delta int
}

// NextTrackRequested skips to the next queued track.
type NextTrackRequested struct{}

// PreviousTrackRequested goes back to the previously played track.
type PreviousTrackRequested struct{}

// CycleRepeatModeRequested advances the repeat mode None -> One -> All.
type CycleRepeatModeRequested struct{}

// Queue requests

// AddTracksToQueue appends tracks to the queue tail.
type AddTracksToQueue struct {
	Tracks []media.Track
}

// RemoveTracksRequested removes tracks by library ID from both queue
// segments.
type RemoveTracksRequested struct {
	IDs []int64
}

// ClearQueueRequested empties the queue without stopping audio already
// in progress.
type ClearQueueRequested struct{}

// ShuffleQueueRequested permutes the future segment.
type ShuffleQueueRequested struct{}

// ResetQueueRequested moves the history back to the front of the queue.
type ResetQueueRequested struct{}

// RateTrackRequested records a rating for a track.
type RateTrackRequested struct {
	Track  media.Track
	Rating media.Rating
}

// Library browsing and search

// SearchRequested submits a library search.
type SearchRequested struct {
	Query media.SearchQuery
}

// SearchResults carries the outcome of a library search.
type SearchResults struct {
	Tracks []media.Track
}

// BrowseArtistRequested loads the albums of an artist.
type BrowseArtistRequested struct {
	Artist string
}

// BrowseAlbumRequested loads the tracks of an album.
type BrowseAlbumRequested struct {
	Artist string
	Album  string
}

// ArtistsLoaded carries the artist list for the browser.
type ArtistsLoaded struct {
	Artists []string
}

// AlbumsLoaded carries the album list for the browser.
type AlbumsLoaded struct {
	Artist string
	Albums []string
}

// TracksLoaded carries the track list for the browser.
type TracksLoaded struct {
	Tracks []media.Track
}

// CollectArtistRequested queues every track by an artist.
type CollectArtistRequested struct {
	Artist string
}

// CollectAlbumRequested queues every track of an album.
type CollectAlbumRequested struct {
	Artist string
	Album  string
}

// CollectTrackRequested queues one track by library ID.
type CollectTrackRequested struct {
	ID int64
}

// Catalog scanning

// ScanRequested starts a catalog scan of the configured media dirs.
type ScanRequested struct{}

// CatalogScanStarted marks the beginning of a scan.
type CatalogScanStarted struct{}

// CatalogDirStarted marks the beginning of one source directory.
type CatalogDirStarted struct {
	Dir string
}

// CatalogFileProcessed reports scan progress within a directory.
type CatalogFileProcessed struct {
	Count int
	Path  string
}

// CatalogDirFinished marks the end of one source directory.
type CatalogDirFinished struct {
	Dir string
}

// CatalogScanFinished marks the end of a scan.
type CatalogScanFinished struct {
	Tracks int64
}

// CatalogUpdated signals that library contents changed and browser
// views should reload.
type CatalogUpdated struct{}

// Engine notifications (worker -> dispatcher)

// StateChanged reports an engine state transition.
type StateChanged struct {
	Previous player.State
	Current  player.State
}

// TitleChanged reports a new media title.
type TitleChanged struct {
	Title string
}

// DurationChanged reports the duration of the loaded media.
type DurationChanged struct {
	Duration time.Duration
}

// PositionChanged reports playback progress. Never carries a negative
// position; the worker filters transient negative engine values.
type PositionChanged struct {
	Position time.Duration
}

// VolumeChanged reports the engine volume in percent.
type VolumeChanged struct {
	Volume int
}

// MuteChanged reports the engine mute flag.
type MuteChanged struct {
	Muted bool
}

// TrackFinished reports that the current media played to its natural
// end. Explicit stops and replacing loads never produce this event.
type TrackFinished struct{}

// Errors and lifecycle

// Error is a recoverable failure; the dispatcher reports it and
// continues with the next event.
type Error struct {
	Err error
}

// FatalError permanently disables the subsystem that raised it; the
// rest of the application keeps running.
type FatalError struct {
	Err error
}

// Exit terminates the dispatcher loop. It is checked before any other
// processing so it cannot be starved.
type Exit struct{}

func (PlayTrackRequested) isEvent()       {}
func (PlayPlaylistRequested) isEvent()    {}
func (TogglePauseRequested) isEvent()     {}
func (StopRequested) isEvent()            {}
func (ToggleMuteRequested) isEvent()      {}
func (SeekRequested) isEvent()            {}
func (AdjustVolumeRequested) isEvent()    {}
func (NextTrackRequested) isEvent()       {}
func (PreviousTrackRequested) isEvent()   {}
func (CycleRepeatModeRequested) isEvent() {}
func (AddTracksToQueue) isEvent()         {}
func (RemoveTracksRequested) isEvent()    {}
func (ClearQueueRequested) isEvent()      {}
func (ShuffleQueueRequested) isEvent()    {}
func (ResetQueueRequested) isEvent()      {}
func (RateTrackRequested) isEvent()       {}
func (SearchRequested) isEvent()          {}
func (SearchResults) isEvent()            {}
func (BrowseArtistRequested) isEvent()    {}
func (BrowseAlbumRequested) isEvent()     {}
func (ArtistsLoaded) isEvent()            {}
func (AlbumsLoaded) isEvent()             {}
func (TracksLoaded) isEvent()             {}
func (CollectArtistRequested) isEvent()   {}
func (CollectAlbumRequested) isEvent()    {}
func (CollectTrackRequested) isEvent()    {}
func (ScanRequested) isEvent()            {}
func (CatalogScanStarted) isEvent()       {}
func (CatalogDirStarted) isEvent()        {}
func (CatalogFileProcessed) isEvent()     {}
func (CatalogDirFinished) isEvent()       {}
func (CatalogScanFinished) isEvent()      {}
func (CatalogUpdated) isEvent()           {}
func (StateChanged) isEvent()             {}
func (TitleChanged) isEvent()             {}
func (DurationChanged) isEvent()          {}
func (PositionChanged) isEvent()          {}
func (VolumeChanged) isEvent()            {}
func (MuteChanged) isEvent()              {}
func (TrackFinished) isEvent()            {}
func (Error) isEvent()                    {}
func (FatalError) isEvent()               {}
func (Exit) isEvent()                     {}
