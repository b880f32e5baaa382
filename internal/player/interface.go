package player

import "time"

// Interface defines the native engine contract for dependency injection
// and testing. All methods are called from the engine worker goroutine.
type Interface interface {
	// Init prepares the audio device. It must be called once before any
	// other method; failure permanently disables audio.
	Init() error

	// Commands
	Load(path string) error // replace current media and unpause
	Stop()
	TogglePause()
	ToggleMute()
	SeekBy(delta time.Duration)
	AdjustVolume(delta int)

	// Polled properties
	Idle() bool
	Paused() bool
	Muted() bool
	Title() string
	Position() time.Duration
	Duration() time.Duration
	Volume() int

	// Finished signals natural end of media. Nothing is ever signalled
	// for an explicit stop or a replacing load.
	Finished() <-chan struct{}

	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
