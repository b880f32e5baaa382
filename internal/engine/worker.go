// Package engine runs the audio-engine worker: a goroutine that owns
// the native player, translates queued commands into player calls and
// polled player properties into application events.
package engine

import (
	"fmt"
	"time"

	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/player"
)

// pollInterval bounds how long one iteration waits for something to
// happen, keeping command latency bounded. It is an interleaving knob,
// not a deadline.
const pollInterval = 50 * time.Millisecond

// Command is the marker interface for engine commands. Commands are
// fire-and-forget: the sender never blocks on their execution.
type Command interface {
	isCommand()
}

// PlayFile loads and replaces the current media, then unpauses.
type PlayFile struct {
	Path string
}

// TogglePause flips the pause flag.
type TogglePause struct{}

// Stop stops playback.
type Stop struct{}

// ToggleMute flips the mute flag.
type ToggleMute struct{}

// Seek moves the position relative to the current one.
type Seek struct {
	Delta time.Duration
}

// AdjustVolume changes the volume relative to the current level; the
// native engine clamps the range.
type AdjustVolume struct {
	Delta int
}

func (PlayFile) isCommand()     {}
func (TogglePause) isCommand()  {}
func (Stop) isCommand()         {}
func (ToggleMute) isCommand()   {}
func (Seek) isCommand()         {}
func (AdjustVolume) isCommand() {}

// Worker bridges the command channel and the polled player properties.
// Run owns the player; nothing else may touch it.
type Worker struct {
	player player.Interface
	cmds   <-chan Command
	events chan<- event.Event
	done   chan struct{}

	poll time.Duration

	// last observed property values, for change detection
	state    player.State
	title    string
	duration time.Duration
	position time.Duration
	volume   int
	muted    bool
	seen     bool // false until the first observation
}

// NewWorker creates an engine worker. Call Run on its own goroutine.
func NewWorker(p player.Interface, cmds <-chan Command, events chan<- event.Event) *Worker {
	return &Worker{
		player: p,
		cmds:   cmds,
		events: events,
		done:   make(chan struct{}),
		poll:   pollInterval,
		state:  player.Stopped,
	}
}

// Done is closed when the worker has terminated; command senders use it
// to detect a dead receiver.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Run executes the worker loop until the command channel is closed.
// Each iteration drains all pending commands without blocking, then
// waits at most the poll interval before observing the player and
// emitting change notifications.
//
// If the player fails to initialize, a fatal event is emitted and the
// worker terminates: audio stays disabled for the process lifetime
// without affecting other subsystems.
func (w *Worker) Run() {
	defer close(w.done)
	defer w.player.Close()

	if err := w.player.Init(); err != nil {
		w.events <- event.FatalError{Err: fmt.Errorf("audio engine: %w", err)}
		return
	}

	for {
		drained := false
		for !drained {
			select {
			case cmd, ok := <-w.cmds:
				if !ok {
					return
				}
				w.apply(cmd)
			default:
				drained = true
			}
		}

		finished := false
		select {
		case cmd, ok := <-w.cmds:
			if !ok {
				return
			}
			w.apply(cmd)
		case <-w.player.Finished():
			finished = true
		case <-time.After(w.poll):
		}

		w.observe(finished)
	}
}

// apply executes one command against the player. Load failures are
// recoverable and reported as error events.
func (w *Worker) apply(cmd Command) {
	switch c := cmd.(type) {
	case PlayFile:
		if err := w.player.Load(c.Path); err != nil {
			w.events <- event.Error{Err: fmt.Errorf("play %s: %w", c.Path, err)}
		}
	case TogglePause:
		w.player.TogglePause()
	case Stop:
		w.player.Stop()
	case ToggleMute:
		w.player.ToggleMute()
	case Seek:
		w.player.SeekBy(c.Delta)
	case AdjustVolume:
		w.player.AdjustVolume(c.Delta)
	}
}

// observe polls the player once and emits at most one state-change
// event followed by any content-property events computed in the same
// iteration, in the fixed order: title, duration, position, volume,
// mute, end of media.
func (w *Worker) observe(finished bool) {
	state := player.StateOf(w.player.Idle(), w.player.Paused())
	if state != w.state {
		w.events <- event.StateChanged{Previous: w.state, Current: state}
		w.state = state
	}

	title := w.player.Title()
	duration := w.player.Duration()
	position := w.player.Position()
	volume := w.player.Volume()
	muted := w.player.Muted()

	if !w.seen || title != w.title {
		w.events <- event.TitleChanged{Title: title}
		w.title = title
	}
	if !w.seen || duration != w.duration {
		w.events <- event.DurationChanged{Duration: duration}
		w.duration = duration
	}
	// Transient negative positions from the engine are filtered.
	if position >= 0 && (!w.seen || position != w.position) {
		w.events <- event.PositionChanged{Position: position}
		w.position = position
	}
	if !w.seen || volume != w.volume {
		w.events <- event.VolumeChanged{Volume: volume}
		w.volume = volume
	}
	if !w.seen || muted != w.muted {
		w.events <- event.MuteChanged{Muted: muted}
		w.muted = muted
	}
	w.seen = true

	if finished {
		w.events <- event.TrackFinished{}
	}
}
