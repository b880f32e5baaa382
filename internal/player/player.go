// Package player wraps the native audio engine (beep) behind a small
// command-and-properties surface. The engine worker issues commands and
// polls properties; nothing here knows about application events.
package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// speakerRate is the fixed output sample rate; decoded streams at other
// rates are resampled.
const speakerRate beep.SampleRate = 44100

const (
	defaultVolume = 100
	resampleQual  = 4
)

// Player owns the speaker and the currently loaded stream. It is driven
// by a single goroutine (the engine worker); the mutex only guards the
// fields the speaker callback touches.
type Player struct {
	mu sync.Mutex

	streamer beep.StreamSeekCloser
	fileRate beep.SampleRate
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	file     *os.File

	title     string
	duration  time.Duration
	volumePct int
	muted     bool
	paused    bool
	idle      bool

	// generation guards against end-of-media callbacks from a stream
	// that has already been replaced or stopped.
	generation int

	finished chan struct{}
}

// New creates a player. Init must be called before anything else.
func New() *Player {
	return &Player{
		idle:      true,
		volumePct: defaultVolume,
		finished:  make(chan struct{}, 1),
	}
}

// Init opens the audio device at the fixed output rate.
func (p *Player) Init() error {
	if err := speaker.Init(speakerRate, speakerRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

// IsMusicFile returns true for file extensions the player can decode.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".ogg", ".wav":
		return true
	}
	return false
}

// Load replaces the current media with the given file and starts it
// unpaused. The previous stream is discarded without signalling
// Finished.
func (p *Player) Load(path string) error {
	p.Stop()

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	var source beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		source = beep.Resample(resampleQual, format.SampleRate, speakerRate, streamer)
	}

	p.mu.Lock()
	p.file = f
	p.streamer = streamer
	p.fileRate = format.SampleRate
	p.ctrl = &beep.Ctrl{Streamer: source}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   volumeLevel(p.volumePct),
		Silent:   p.muted || p.volumePct == 0,
	}
	p.title = readTitle(path)
	p.duration = format.SampleRate.D(streamer.Len())
	p.paused = false
	p.idle = false
	p.generation++
	gen := p.generation
	vol := p.volume
	p.mu.Unlock()

	// The callback fires with the speaker lock held, so the handler
	// runs on its own goroutine; the generation guard covers the gap.
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		go p.endOfMedia(gen)
	})))

	return nil
}

// endOfMedia runs on the speaker goroutine when a stream plays to its
// natural end.
func (p *Player) endOfMedia(gen int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return
	}
	p.idle = true
	select {
	case p.finished <- struct{}{}:
	default:
	}
}

// Stop discards the current media without signalling Finished.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.idle && p.streamer == nil {
		p.mu.Unlock()
		return
	}
	p.generation++
	streamer := p.streamer
	file := p.file
	p.streamer = nil
	p.file = nil
	p.ctrl = nil
	p.volume = nil
	p.title = ""
	p.duration = 0
	p.paused = false
	p.idle = true
	p.mu.Unlock()

	speaker.Clear()
	if streamer != nil {
		streamer.Close()
	}
	if file != nil {
		file.Close()
	}
}

// TogglePause flips the paused flag. No-op while idle.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.idle || p.ctrl == nil {
		return
	}
	p.paused = !p.paused
	speaker.Lock()
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// ToggleMute flips the mute flag. Volume is preserved across mutes.
func (p *Player) ToggleMute() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	if p.volume != nil {
		speaker.Lock()
		p.volume.Silent = p.muted || p.volumePct == 0
		speaker.Unlock()
	}
}

// AdjustVolume changes the volume by delta units, clamped to 0..100.
func (p *Player) AdjustVolume(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumePct = min(max(p.volumePct+delta, 0), 100)
	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = volumeLevel(p.volumePct)
		p.volume.Silent = p.muted || p.volumePct == 0
		speaker.Unlock()
	}
}

// SeekBy moves the playback position relative to the current one.
// Seeking past the end counts as end of media.
func (p *Player) SeekBy(delta time.Duration) {
	p.mu.Lock()
	if p.idle || p.streamer == nil {
		p.mu.Unlock()
		return
	}
	streamer := p.streamer
	rate := p.fileRate
	p.mu.Unlock()

	// The speaker goroutine streams from the same decoder, so the
	// position read and the seek happen under the speaker lock.
	// Seeking to the very end drains the stream, which ends it
	// naturally and signals Finished through the end-of-media callback.
	speaker.Lock()
	newPos := streamer.Position() + rate.N(delta)
	newPos = min(max(newPos, 0), streamer.Len())
	_ = streamer.Seek(newPos)
	speaker.Unlock()
}

// Idle reports whether no media is loaded or the stream has ended.
func (p *Player) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idle
}

// Paused reports the pause flag.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Muted reports the mute flag.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Title returns the media title of the loaded stream.
func (p *Player) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// Position returns the playback position within the loaded stream.
// The streamer is shared with the speaker goroutine, so the read takes
// the speaker lock, after p.mu is released.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	if p.idle || p.streamer == nil {
		p.mu.Unlock()
		return 0
	}
	streamer := p.streamer
	rate := p.fileRate
	p.mu.Unlock()

	speaker.Lock()
	pos := streamer.Position()
	speaker.Unlock()
	return rate.D(pos)
}

// Duration returns the duration of the loaded stream.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Volume returns the volume in percent.
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumePct
}

// Finished yields one signal per natural end of media.
func (p *Player) Finished() <-chan struct{} {
	return p.finished
}

// Close stops playback and releases the current stream.
func (p *Player) Close() error {
	p.Stop()
	return nil
}

// volumeLevel converts a 0..100 percentage to a beep volume exponent
// (base 2), with 100% at unity gain.
func volumeLevel(pct int) float64 {
	if pct <= 0 {
		return 0
	}
	return math.Log2(float64(pct) / 100)
}

// readTitle extracts the tagged title, falling back to the file name.
func readTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return filepath.Base(path)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil || m.Title() == "" {
		return filepath.Base(path)
	}
	return m.Title()
}
