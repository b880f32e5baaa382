package library

import (
	"database/sql"

	"github.com/caprica/chooui/internal/media"
)

// trackColumns is the select list shared by every query returning
// media.Track rows, including the joined statistics.
const trackColumns = `
	t.id, t.durable_id, t.title, t.track_number, t.duration_secs,
	t.album, t.artist, t.path,
	COALESCE(s.rating, 0), COALESCE(s.play_count, 0)
`

const trackJoin = `
	FROM catalog_tracks t
	LEFT JOIN track_stats s ON s.durable_id = t.durable_id
`

// Artists returns all unique artists in the catalog.
func (l *Library) Artists() ([]string, error) {
	rows, err := l.db.Query(`
		SELECT DISTINCT artist FROM catalog_tracks ORDER BY artist COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []string
	for rows.Next() {
		var artist string
		if err := rows.Scan(&artist); err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

// Albums returns the album titles for a given artist.
func (l *Library) Albums(artist string) ([]string, error) {
	rows, err := l.db.Query(`
		SELECT DISTINCT album FROM catalog_tracks
		WHERE artist = ?
		ORDER BY album COLLATE NOCASE
	`, artist)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []string
	for rows.Next() {
		var album string
		if err := rows.Scan(&album); err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

// AlbumTracks returns the tracks of one album in track order.
func (l *Library) AlbumTracks(artist, album string) ([]media.Track, error) {
	return l.queryTracks(`
		SELECT `+trackColumns+trackJoin+`
		WHERE t.artist = ? AND t.album = ?
		ORDER BY t.track_number, t.title COLLATE NOCASE
	`, artist, album)
}

// ArtistTracks returns every track by an artist, grouped by album.
func (l *Library) ArtistTracks(artist string) ([]media.Track, error) {
	return l.queryTracks(`
		SELECT `+trackColumns+trackJoin+`
		WHERE t.artist = ?
		ORDER BY t.album COLLATE NOCASE, t.track_number, t.title COLLATE NOCASE
	`, artist)
}

// TrackByID returns one track by its row ID.
func (l *Library) TrackByID(id int64) (*media.Track, error) {
	tracks, err := l.queryTracks(`
		SELECT `+trackColumns+trackJoin+`
		WHERE t.id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, sql.ErrNoRows
	}
	return &tracks[0], nil
}

// TrackCount returns the total number of catalog tracks.
func (l *Library) TrackCount() (int64, error) {
	var count int64
	err := l.db.QueryRow(`SELECT COUNT(*) FROM catalog_tracks`).Scan(&count)
	return count, err
}

func (l *Library) queryTracks(query string, args ...any) ([]media.Track, error) {
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []media.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func scanTrack(rows *sql.Rows) (media.Track, error) {
	var (
		t            media.Track
		durable      int64
		trackNum     sql.NullInt64
		durationSecs int64
		rating       int64
		playCount    int64
	)
	err := rows.Scan(&t.ID, &durable, &t.Title, &trackNum, &durationSecs,
		&t.Album, &t.Artist, &t.Path, &rating, &playCount)
	if err != nil {
		return media.Track{}, err
	}
	t.DurableID = uint64(durable)
	if trackNum.Valid {
		t.TrackNumber = int(trackNum.Int64)
	}
	t.Duration = secondsToDuration(durationSecs)
	t.Rating = media.Rating(rating)
	t.PlayCount = int(playCount)
	return t, nil
}
