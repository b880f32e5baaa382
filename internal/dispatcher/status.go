package dispatcher

import (
	"sync"
	"time"

	"github.com/caprica/chooui/internal/media"
	"github.com/caprica/chooui/internal/player"
)

// Status is the presentation-facing view of the playback state. It is
// a plain value; the dispatcher republishes a complete copy after each
// processed event.
type Status struct {
	State    player.State
	Title    string
	Duration time.Duration
	Position time.Duration
	Volume   int
	Muted    bool

	Current    *media.Track
	PlayMode   PlayMode
	RepeatMode RepeatMode

	Artists       []string
	BrowsedArtist string
	BrowsedAlbum  string
	Albums        []string
	Tracks        []media.Track
	SearchResults []media.Track

	Scanning    bool
	ScanCount   int
	ScanPath    string
	CatalogSize int64

	LastError string
}

// Board exposes the latest status to readers on other goroutines. Like
// the queue snapshot publisher, lock hold time is bounded to a copy.
type Board struct {
	mu     sync.RWMutex
	status Status
}

// NewBoard creates a board holding a zero status.
func NewBoard() *Board {
	return &Board{}
}

// Publish replaces the visible status.
func (b *Board) Publish(s Status) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

// Load returns the most recently published status.
func (b *Board) Load() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}
