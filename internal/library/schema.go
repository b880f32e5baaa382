package library

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS catalog_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			durable_id INTEGER NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			title TEXT NOT NULL,
			track_number INTEGER,
			duration_secs INTEGER NOT NULL,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_catalog_artist ON catalog_tracks(artist);
		CREATE INDEX IF NOT EXISTS idx_catalog_artist_album ON catalog_tracks(artist, album);
		CREATE INDEX IF NOT EXISTS idx_catalog_durable ON catalog_tracks(durable_id);

		CREATE TABLE IF NOT EXISTS track_stats (
			durable_id INTEGER PRIMARY KEY,
			rating INTEGER NOT NULL DEFAULT 0,
			play_count INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
