package player

import "time"

// Mock is a test double for the native engine.
type Mock struct {
	initErr   error
	loadErr   error
	loadCalls []string

	idle     bool
	paused   bool
	muted    bool
	title    string
	position time.Duration
	duration time.Duration
	volume   int

	seekCalls   []time.Duration
	volumeCalls []int
	stopCalls   int

	finished chan struct{}
}

// NewMock creates a mock player in the idle state.
func NewMock() *Mock {
	return &Mock{
		idle:     true,
		volume:   defaultVolume,
		finished: make(chan struct{}, 1),
	}
}

func (m *Mock) Init() error { return m.initErr }

func (m *Mock) Load(path string) error {
	m.loadCalls = append(m.loadCalls, path)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.idle = false
	m.paused = false
	m.title = path
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.idle = true
	m.paused = false
	m.title = ""
	m.position = 0
	m.duration = 0
}

func (m *Mock) TogglePause() {
	if !m.idle {
		m.paused = !m.paused
	}
}

func (m *Mock) ToggleMute() { m.muted = !m.muted }

func (m *Mock) SeekBy(delta time.Duration) {
	m.seekCalls = append(m.seekCalls, delta)
}

func (m *Mock) AdjustVolume(delta int) {
	m.volumeCalls = append(m.volumeCalls, delta)
	m.volume = min(max(m.volume+delta, 0), 100)
}

func (m *Mock) Idle() bool              { return m.idle }
func (m *Mock) Paused() bool            { return m.paused }
func (m *Mock) Muted() bool             { return m.muted }
func (m *Mock) Title() string           { return m.title }
func (m *Mock) Position() time.Duration { return m.position }
func (m *Mock) Duration() time.Duration { return m.duration }
func (m *Mock) Volume() int             { return m.volume }

func (m *Mock) Finished() <-chan struct{} { return m.finished }

func (m *Mock) Close() error { return nil }

// Test helpers

func (m *Mock) SetInitError(err error) { m.initErr = err }

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetFlags(idle, paused bool) {
	m.idle = idle
	m.paused = paused
}

func (m *Mock) SetTitle(title string) { m.title = title }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

// CurrentPath returns the most recently loaded path, or "".
func (m *Mock) CurrentPath() string {
	if len(m.loadCalls) == 0 {
		return ""
	}
	return m.loadCalls[len(m.loadCalls)-1]
}

// SimulateFinished signals a natural end of media.
func (m *Mock) SimulateFinished() {
	m.idle = true
	select {
	case m.finished <- struct{}{}:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
