// Package queue implements the playback queue: an ordered track
// collection split into a played history and a FIFO future segment.
//
// All mutating methods must be called from a single goroutine (the event
// dispatcher). Readers use the Publisher snapshot instead.
package queue

import (
	"math/rand/v2"
	"time"

	"github.com/caprica/chooui/internal/media"
)

// Queue holds the tracks queued for playback and those already played.
// The current track is the most recently played one.
type Queue struct {
	played []media.Track // oldest -> most recent
	queued []media.Track // FIFO future

	playedDur time.Duration
	queuedDur time.Duration
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Append adds tracks to the tail of the future segment.
func (q *Queue) Append(tracks ...media.Track) {
	q.queued = append(q.queued, tracks...)
	q.recompute()
}

// Remove deletes all tracks whose ID is in ids, from both segments.
// Removing the current track does not stop audio; the caller issues a
// stop or skip separately.
func (q *Queue) Remove(ids ...int64) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	keep := func(tracks []media.Track) []media.Track {
		out := tracks[:0]
		for _, t := range tracks {
			if _, ok := drop[t.ID]; !ok {
				out = append(out, t)
			}
		}
		return out
	}
	q.played = keep(q.played)
	q.queued = keep(q.queued)
	q.recompute()
}

// Current returns the current track (the most recently played), or nil
// if nothing has played yet.
func (q *Queue) Current() *media.Track {
	if len(q.played) == 0 {
		return nil
	}
	return &q.played[len(q.played)-1]
}

// Advance moves the head of the future segment to the tail of the
// history and returns the new current track. If the future segment is
// empty it returns the unchanged current track without moving anything.
func (q *Queue) Advance() *media.Track {
	if len(q.queued) == 0 {
		return q.Current()
	}
	q.played = append(q.played, q.queued[0])
	q.queued = q.queued[1:]
	q.recompute()
	return q.Current()
}

// Rewind is the inverse of Advance: it moves the tail of the history
// back to the head of the future segment and returns the new current
// track. If the history is empty it returns nil.
func (q *Queue) Rewind() *media.Track {
	if len(q.played) == 0 {
		return nil
	}
	last := q.played[len(q.played)-1]
	q.played = q.played[:len(q.played)-1]
	q.queued = append([]media.Track{last}, q.queued...)
	q.recompute()
	return q.Current()
}

// Shuffle uniformly permutes the future segment, leaving the history
// untouched.
func (q *Queue) Shuffle() {
	rand.Shuffle(len(q.queued), func(i, j int) {
		q.queued[i], q.queued[j] = q.queued[j], q.queued[i]
	})
}

// Clear empties both segments.
func (q *Queue) Clear() {
	q.played = nil
	q.queued = nil
	q.recompute()
}

// Reset moves the whole history back to the front of the future
// segment, restoring the original un-played order.
func (q *Queue) Reset() {
	if len(q.played) == 0 {
		return
	}
	q.queued = append(q.played, q.queued...)
	q.played = nil
	q.recompute()
}

// Played returns a copy of the history segment, oldest first.
func (q *Queue) Played() []media.Track {
	out := make([]media.Track, len(q.played))
	copy(out, q.played)
	return out
}

// Queued returns a copy of the future segment in play order.
func (q *Queue) Queued() []media.Track {
	out := make([]media.Track, len(q.queued))
	copy(out, q.queued)
	return out
}

// Len returns the total number of tracks in both segments.
func (q *Queue) Len() int {
	return len(q.played) + len(q.queued)
}

// QueuedLen returns the number of tracks still to play.
func (q *Queue) QueuedLen() int {
	return len(q.queued)
}

// IsEmpty returns true if both segments are empty.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// TotalDuration returns the combined duration of both segments.
func (q *Queue) TotalDuration() time.Duration {
	return q.playedDur + q.queuedDur
}

// PlayedDuration returns the duration of the history segment.
func (q *Queue) PlayedDuration() time.Duration {
	return q.playedDur
}

// QueuedDuration returns the duration of the future segment.
func (q *Queue) QueuedDuration() time.Duration {
	return q.queuedDur
}

// recompute refreshes the duration aggregates. Called after every
// mutation so the accessors stay O(1).
func (q *Queue) recompute() {
	var played, queued time.Duration
	for _, t := range q.played {
		played += t.Duration
	}
	for _, t := range q.queued {
		queued += t.Duration
	}
	q.playedDur = played
	q.queuedDur = queued
}
