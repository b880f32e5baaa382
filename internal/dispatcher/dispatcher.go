// Package dispatcher runs the central event loop. One goroutine owns
// the playback queue and the playback modes, translates incoming
// events into state transitions, and issues commands to the engine and
// task workers. It never blocks on engine or storage I/O.
package dispatcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/caprica/chooui/internal/engine"
	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/media"
	"github.com/caprica/chooui/internal/queue"
	"github.com/caprica/chooui/internal/tasks"
)

// Config wires a dispatcher to its collaborators.
type Config struct {
	Events     <-chan event.Event
	EngineCmds chan<- engine.Command
	EngineDone <-chan struct{}
	Tasks      chan<- tasks.Task
	TasksDone  <-chan struct{}

	Snapshots *queue.Publisher
	Board     *Board

	// Refresh is called exactly once per processed event, after the
	// snapshot and status have been republished.
	Refresh func()

	// InitialRepeat seeds the repeat mode from the config.
	InitialRepeat RepeatMode

	Log *log.Logger
}

// Dispatcher is the single mutator of the playback queue and modes.
// All methods run on the Run goroutine.
type Dispatcher struct {
	events     <-chan event.Event
	engineCmds chan<- engine.Command
	engineDone <-chan struct{}
	tasks      chan<- tasks.Task
	tasksDone  <-chan struct{}

	queue     *queue.Queue
	snapshots *queue.Publisher
	board     *Board

	// current is the selected track; nil before the first play and at
	// queue exhaustion. It survives queue navigation but not Clear.
	current *media.Track

	status  Status
	refresh func()
	log     *log.Logger
}

// New creates a dispatcher. Call Run on its own goroutine.
func New(cfg Config) *Dispatcher {
	logger := cfg.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}
	refresh := cfg.Refresh
	if refresh == nil {
		refresh = func() {}
	}
	return &Dispatcher{
		events:     cfg.Events,
		engineCmds: cfg.EngineCmds,
		engineDone: cfg.EngineDone,
		tasks:      cfg.Tasks,
		tasksDone:  cfg.TasksDone,
		queue:      queue.New(),
		snapshots:  cfg.Snapshots,
		board:      cfg.Board,
		status:     Status{Volume: 100, RepeatMode: cfg.InitialRepeat},
		refresh:    refresh,
		log:        logger,
	}
}

// Run processes events in arrival order until an Exit event. Every
// processed event republishes the queue snapshot and status, then
// triggers one refresh.
func (d *Dispatcher) Run() {
	for ev := range d.events {
		if _, ok := ev.(event.Exit); ok {
			d.log.Info("dispatcher exiting")
			return
		}
		d.handle(ev)
		d.publish()
		d.refresh()
	}
}

func (d *Dispatcher) handle(ev event.Event) {
	switch ev := ev.(type) {
	// Playback control
	case event.PlayTrackRequested:
		d.status.PlayMode = PlayOne
		d.setCurrent(&ev.Track)
		d.play(ev.Track)
	case event.PlayPlaylistRequested:
		d.status.PlayMode = Playlist
		// A current selection keeps playing; only a fresh selection
		// starts the engine.
		if d.current == nil {
			if t := d.queue.Advance(); t != nil {
				d.setCurrent(t)
				d.play(*t)
			}
		}
	case event.TogglePauseRequested:
		d.sendEngine(engine.TogglePause{})
	case event.StopRequested:
		d.sendEngine(engine.Stop{})
	case event.ToggleMuteRequested:
		d.sendEngine(engine.ToggleMute{})
	case event.SeekRequested:
		d.sendEngine(engine.Seek{Delta: ev.Delta})
	case event.AdjustVolumeRequested:
		d.sendEngine(engine.AdjustVolume{Delta: ev.Delta})
	case event.NextTrackRequested:
		d.next()
	case event.PreviousTrackRequested:
		d.previous()
	case event.CycleRepeatModeRequested:
		d.status.RepeatMode = d.status.RepeatMode.Next()

	// Queue
	case event.AddTracksToQueue:
		d.queue.Append(ev.Tracks...)
	case event.RemoveTracksRequested:
		d.queue.Remove(ev.IDs...)
	case event.ClearQueueRequested:
		d.queue.Clear()
		d.current = nil
	case event.ShuffleQueueRequested:
		d.queue.Shuffle()
	case event.ResetQueueRequested:
		d.queue.Reset()
	case event.RateTrackRequested:
		d.sendTasks(tasks.RateTrack{DurableID: ev.Track.DurableID, Rating: ev.Rating})

	// Browsing and search
	case event.SearchRequested:
		if !ev.Query.Searchable() {
			d.fail(fmt.Errorf("search terms must be at least %d characters", media.MinSearchTermLen))
			return
		}
		d.sendTasks(tasks.Search{Query: ev.Query})
	case event.SearchResults:
		d.status.SearchResults = ev.Tracks
	case event.BrowseArtistRequested:
		d.status.BrowsedArtist = ev.Artist
		d.sendTasks(tasks.FetchAlbums{Artist: ev.Artist})
	case event.BrowseAlbumRequested:
		d.status.BrowsedArtist = ev.Artist
		d.status.BrowsedAlbum = ev.Album
		d.sendTasks(tasks.FetchTracks{Artist: ev.Artist, Album: ev.Album})
	case event.ArtistsLoaded:
		d.status.Artists = ev.Artists
	case event.AlbumsLoaded:
		d.status.BrowsedArtist = ev.Artist
		d.status.Albums = ev.Albums
	case event.TracksLoaded:
		d.status.Tracks = ev.Tracks
	case event.CollectArtistRequested:
		d.sendTasks(tasks.CollectArtist{Artist: ev.Artist})
	case event.CollectAlbumRequested:
		d.sendTasks(tasks.CollectAlbum{Artist: ev.Artist, Album: ev.Album})
	case event.CollectTrackRequested:
		d.sendTasks(tasks.CollectTrack{ID: ev.ID})

	// Catalog
	case event.ScanRequested:
		d.sendTasks(tasks.ScanCatalog{})
	case event.CatalogScanStarted:
		d.status.Scanning = true
		d.status.ScanCount = 0
		d.status.ScanPath = ""
	case event.CatalogDirStarted:
		d.status.ScanPath = ev.Dir
	case event.CatalogFileProcessed:
		d.status.ScanCount = ev.Count
		d.status.ScanPath = ev.Path
	case event.CatalogDirFinished:
		d.status.ScanPath = ""
	case event.CatalogScanFinished:
		d.status.Scanning = false
		d.status.CatalogSize = ev.Tracks
		d.log.Info("catalog scan finished", "tracks", ev.Tracks)
	case event.CatalogUpdated:
		d.sendTasks(tasks.FetchArtists{})

	// Engine properties
	case event.StateChanged:
		d.status.State = ev.Current
		d.log.Debug("engine state", "from", ev.Previous, "to", ev.Current)
	case event.TitleChanged:
		d.status.Title = ev.Title
	case event.DurationChanged:
		d.status.Duration = ev.Duration
	case event.PositionChanged:
		d.status.Position = ev.Position
	case event.VolumeChanged:
		d.status.Volume = ev.Volume
	case event.MuteChanged:
		d.status.Muted = ev.Muted
	case event.TrackFinished:
		d.trackFinished()

	// Failures
	case event.Error:
		d.fail(ev.Err)
	case event.FatalError:
		d.status.LastError = ev.Err.Error()
		d.log.Error("fatal", "err", ev.Err)
	}
}

// trackFinished decides what plays after a natural end of media. Only
// playlist mode reacts; a single track simply ends.
func (d *Dispatcher) trackFinished() {
	if d.status.PlayMode != Playlist {
		return
	}
	if d.queue.IsEmpty() {
		d.current = nil
		d.sendEngine(engine.Stop{})
		return
	}
	if d.status.RepeatMode == RepeatOne {
		// The finished track stays current; playback waits for an
		// explicit command rather than replaying automatically.
		return
	}
	if d.queue.QueuedLen() == 0 {
		if d.status.RepeatMode != RepeatAll {
			d.current = nil
			return
		}
		d.queue.Reset()
	}
	if t := d.queue.Advance(); t != nil {
		d.setCurrent(t)
		d.play(*t)
	}
}

// next skips to the following queued track, wrapping around under
// repeat-all.
func (d *Dispatcher) next() {
	if d.queue.QueuedLen() == 0 {
		if d.status.RepeatMode != RepeatAll || d.queue.IsEmpty() {
			return
		}
		d.queue.Reset()
	}
	if t := d.queue.Advance(); t != nil {
		d.setCurrent(t)
		d.play(*t)
	}
}

// previous steps back through the history, keeping at least the
// current track in it.
func (d *Dispatcher) previous() {
	if d.queue.Len()-d.queue.QueuedLen() < 2 {
		return
	}
	if t := d.queue.Rewind(); t != nil {
		d.setCurrent(t)
		d.play(*t)
	}
}

func (d *Dispatcher) play(t media.Track) {
	d.log.Info("play", "artist", t.Artist, "title", t.Title)
	d.sendEngine(engine.PlayFile{Path: t.Path})
	d.sendTasks(tasks.RecordPlay{DurableID: t.DurableID})
}

func (d *Dispatcher) setCurrent(t *media.Track) {
	c := *t
	d.current = &c
}

// sendEngine delivers a command unless the engine worker is gone, in
// which case the failure is recoverable: playback is unavailable but
// the loop continues.
func (d *Dispatcher) sendEngine(cmd engine.Command) {
	select {
	case d.engineCmds <- cmd:
	case <-d.engineDone:
		d.fail(errors.New("audio engine is not running"))
	}
}

func (d *Dispatcher) sendTasks(t tasks.Task) {
	select {
	case d.tasks <- t:
	case <-d.tasksDone:
		d.fail(errors.New("task executor is not running"))
	}
}

func (d *Dispatcher) fail(err error) {
	d.status.LastError = err.Error()
	d.log.Error("dispatcher", "err", err)
}

func (d *Dispatcher) publish() {
	d.snapshots.Publish(d.queue.Snapshot())
	st := d.status
	if d.current != nil {
		c := *d.current
		st.Current = &c
	}
	d.board.Publish(st)
}
