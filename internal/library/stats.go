package library

import "github.com/caprica/chooui/internal/media"

// Statistics key on the durable track ID so ratings and play counts
// survive a rescan that reassigns row IDs.

// RecordPlay increments the play count for a track.
func (l *Library) RecordPlay(durableID uint64) error {
	_, err := l.db.Exec(`
		INSERT INTO track_stats (durable_id, play_count)
		VALUES (?, 1)
		ON CONFLICT(durable_id) DO UPDATE SET play_count = play_count + 1
	`, int64(durableID))
	return err
}

// SetRating stores a rating for a track. A zero rating clears it.
func (l *Library) SetRating(durableID uint64, rating media.Rating) error {
	if !rating.Valid() {
		return media.ErrInvalidRating
	}
	_, err := l.db.Exec(`
		INSERT INTO track_stats (durable_id, rating)
		VALUES (?, ?)
		ON CONFLICT(durable_id) DO UPDATE SET rating = excluded.rating
	`, int64(durableID), int64(rating))
	return err
}
