// Package media defines the domain values shared by the playback core:
// tracks, ratings and search queries.
package media

import (
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

// Rating is a user rating from 0 (unrated) to 5.
type Rating int

const MaxRating Rating = 5

// ErrInvalidRating reports a rating outside the 0..5 range.
var ErrInvalidRating = errors.New("rating out of range")

// Valid returns true if the rating is within the accepted range.
func (r Rating) Valid() bool {
	return r >= 0 && r <= MaxRating
}

// Track is an immutable snapshot of a library track. Tracks are cheap to
// copy; every collection that holds one owns its own copy.
type Track struct {
	ID          int64
	DurableID   uint64
	Title       string
	TrackNumber int
	Duration    time.Duration
	Album       string
	Artist      string
	Path        string
	Rating      Rating
	PlayCount   int
}

// DurableID derives a stable identity for a track from its metadata so
// that persisted statistics survive rescans and database row churn.
func DurableID(artist, album string, trackNumber int, title string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%s", artist, album, trackNumber, title)
	return h.Sum64()
}
