package queue

import (
	"sync"
	"time"

	"github.com/caprica/chooui/internal/media"
)

// Snapshot is an immutable read-only copy of the queue contents for the
// presentation layer.
type Snapshot struct {
	Played []media.Track
	Queued []media.Track

	TotalDuration  time.Duration
	PlayedDuration time.Duration
	QueuedDuration time.Duration
}

// Current returns the current track of the snapshot, or nil.
func (s Snapshot) Current() *media.Track {
	if len(s.Played) == 0 {
		return nil
	}
	return &s.Played[len(s.Played)-1]
}

// Snapshot builds a copy of the queue suitable for publishing.
func (q *Queue) Snapshot() Snapshot {
	return Snapshot{
		Played:         q.Played(),
		Queued:         q.Queued(),
		TotalDuration:  q.TotalDuration(),
		PlayedDuration: q.playedDur,
		QueuedDuration: q.queuedDur,
	}
}

// Publisher exposes the latest queue snapshot to readers on other
// goroutines. The dispatcher publishes after each mutation; readers
// only ever see complete copies, so lock hold time is bounded to a
// pointer swap on both sides.
type Publisher struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewPublisher creates a publisher holding an empty snapshot.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish replaces the visible snapshot.
func (p *Publisher) Publish(s Snapshot) {
	p.mu.Lock()
	p.snap = s
	p.mu.Unlock()
}

// Load returns the most recently published snapshot.
func (p *Publisher) Load() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}
