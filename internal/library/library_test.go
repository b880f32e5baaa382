package library

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caprica/chooui/internal/media"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func insertTrack(t *testing.T, l *Library, artist, album, title string, trackNum int, path string) {
	t.Helper()
	err := l.upsertTrack(trackMeta{
		fileInfo: fileInfo{path: path, mtime: 1},
		artist:   artist,
		album:    album,
		title:    title,
		trackNum: trackNum,
		duration: 3 * time.Minute,
	})
	if err != nil {
		t.Fatalf("upsertTrack(%q) error = %v", path, err)
	}
}

func TestArtistsAndAlbums(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "beta", "Second", "One", 1, "/m/b1.mp3")
	insertTrack(t, l, "Alpha", "First", "One", 1, "/m/a1.mp3")
	insertTrack(t, l, "Alpha", "First", "Two", 2, "/m/a2.mp3")
	insertTrack(t, l, "Alpha", "Another", "One", 1, "/m/a3.mp3")

	artists, err := l.Artists()
	if err != nil {
		t.Fatalf("Artists() error = %v", err)
	}
	if len(artists) != 2 || artists[0] != "Alpha" || artists[1] != "beta" {
		t.Errorf("Artists() = %v, want [Alpha beta]", artists)
	}

	albums, err := l.Albums("Alpha")
	if err != nil {
		t.Fatalf("Albums() error = %v", err)
	}
	if len(albums) != 2 || albums[0] != "Another" || albums[1] != "First" {
		t.Errorf("Albums(Alpha) = %v, want [Another First]", albums)
	}
}

func TestAlbumTracksOrder(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "Closer", 9, "/m/a9.mp3")
	insertTrack(t, l, "Alpha", "First", "Opener", 1, "/m/a1.mp3")
	insertTrack(t, l, "Alpha", "First", "Middle", 5, "/m/a5.mp3")

	tracks, err := l.AlbumTracks("Alpha", "First")
	if err != nil {
		t.Fatalf("AlbumTracks() error = %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("AlbumTracks() returned %d tracks, want 3", len(tracks))
	}
	want := []string{"Opener", "Middle", "Closer"}
	for i, w := range want {
		if tracks[i].Title != w {
			t.Errorf("tracks[%d].Title = %q, want %q", i, tracks[i].Title, w)
		}
	}
	if tracks[0].Duration != 3*time.Minute {
		t.Errorf("tracks[0].Duration = %v, want 3m", tracks[0].Duration)
	}
}

func TestTrackByID(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "Opener", 1, "/m/a1.mp3")

	tracks, err := l.AlbumTracks("Alpha", "First")
	if err != nil || len(tracks) != 1 {
		t.Fatalf("AlbumTracks() = %v, %v", tracks, err)
	}

	got, err := l.TrackByID(tracks[0].ID)
	if err != nil {
		t.Fatalf("TrackByID() error = %v", err)
	}
	if got.Path != "/m/a1.mp3" || got.Title != "Opener" {
		t.Errorf("TrackByID() = %+v", got)
	}
	if got.DurableID != media.DurableID("Alpha", "First", 1, "Opener") {
		t.Errorf("TrackByID() durable ID mismatch")
	}

	if _, err := l.TrackByID(9999); err == nil {
		t.Error("TrackByID(9999) expected error, got nil")
	}
}

func TestStatsSurviveRescan(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "Opener", 1, "/m/a1.mp3")

	durable := media.DurableID("Alpha", "First", 1, "Opener")
	if err := l.RecordPlay(durable); err != nil {
		t.Fatalf("RecordPlay() error = %v", err)
	}
	if err := l.RecordPlay(durable); err != nil {
		t.Fatalf("RecordPlay() error = %v", err)
	}
	if err := l.SetRating(durable, 4); err != nil {
		t.Fatalf("SetRating() error = %v", err)
	}

	// Same metadata at a new path and mtime, as after moving the file
	// and rescanning.
	err := l.upsertTrack(trackMeta{
		fileInfo: fileInfo{path: "/m/moved/a1.mp3", mtime: 2},
		artist:   "Alpha",
		album:    "First",
		title:    "Opener",
		trackNum: 1,
		duration: 3 * time.Minute,
	})
	if err != nil {
		t.Fatalf("upsertTrack() error = %v", err)
	}

	tracks, err := l.AlbumTracks("Alpha", "First")
	if err != nil {
		t.Fatalf("AlbumTracks() error = %v", err)
	}
	for _, tr := range tracks {
		if tr.PlayCount != 2 {
			t.Errorf("PlayCount = %d, want 2 (path %s)", tr.PlayCount, tr.Path)
		}
		if tr.Rating != 4 {
			t.Errorf("Rating = %d, want 4 (path %s)", tr.Rating, tr.Path)
		}
	}
}

func TestSetRatingRejectsOutOfRange(t *testing.T) {
	l := openTestLibrary(t)
	if err := l.SetRating(1, 6); err == nil {
		t.Error("SetRating(6) expected error, got nil")
	}
	if err := l.SetRating(1, -1); err == nil {
		t.Error("SetRating(-1) expected error, got nil")
	}
}

func TestSearch(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Pink Floyd", "The Wall", "Mother", 5, "/m/pf1.mp3")
	insertTrack(t, l, "Pink Floyd", "Animals", "Dogs", 2, "/m/pf2.mp3")
	insertTrack(t, l, "Radiohead", "The Bends", "Street Spirit", 12, "/m/rh1.mp3")

	got, err := l.Search(media.SearchQuery{Any: "floyd"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Search(any floyd) returned %d tracks, want 2", len(got))
	}

	got, err = l.Search(media.SearchQuery{Album: "the"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Search(album the) returned %d tracks, want 2", len(got))
	}

	got, err = l.Search(media.SearchQuery{Artist: "floyd", Track: "mother"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Mother" {
		t.Errorf("Search(artist floyd, track mother) = %v", got)
	}
}

func TestSearchEscapesWildcards(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "100% Pure", 1, "/m/a1.mp3")
	insertTrack(t, l, "Alpha", "First", "1000 Times", 2, "/m/a2.mp3")

	got, err := l.Search(media.SearchQuery{Track: "100%"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "100% Pure" {
		t.Errorf("Search(100%%) = %v, want only the literal match", got)
	}
}

func TestDiscoverFilesFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one.mp3", "two.FLAC", "cover.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "three.ogg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files := discoverFiles(dir)
	if len(files) != 3 {
		t.Errorf("discoverFiles() found %d files, want 3: %v", len(files), files)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "Kept", 1, "/m/a1.mp3")

	boom := errors.New("boom")
	err := withTx(l.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM catalog_tracks`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("withTx error = %v, want %v", err, boom)
	}

	count, err := l.TrackCount()
	if err != nil {
		t.Fatalf("TrackCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("TrackCount() = %d after rollback, want 1", count)
	}
}

func TestWithTxCommits(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "Gone", 1, "/m/a1.mp3")

	err := withTx(l.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM catalog_tracks`)
		return err
	})
	if err != nil {
		t.Fatalf("withTx error = %v", err)
	}

	count, err := l.TrackCount()
	if err != nil {
		t.Fatalf("TrackCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("TrackCount() = %d after commit, want 0", count)
	}
}

func TestTrackNumberNullable(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "Untracked", 0, "/m/a0.mp3")

	tracks, err := l.AlbumTracks("Alpha", "First")
	if err != nil || len(tracks) != 1 {
		t.Fatalf("AlbumTracks() = %v, %v", tracks, err)
	}
	if tracks[0].TrackNumber != 0 {
		t.Errorf("TrackNumber = %d for untagged track, want 0", tracks[0].TrackNumber)
	}
}

func TestPruneMissing(t *testing.T) {
	l := openTestLibrary(t)
	insertTrack(t, l, "Alpha", "First", "Kept", 1, "/m/keep.mp3")
	insertTrack(t, l, "Alpha", "First", "Gone", 2, "/m/gone.mp3")

	existing, err := l.existingFiles()
	if err != nil {
		t.Fatalf("existingFiles() error = %v", err)
	}
	if err := l.pruneMissing(existing, map[string]bool{"/m/keep.mp3": true}); err != nil {
		t.Fatalf("pruneMissing() error = %v", err)
	}

	count, err := l.TrackCount()
	if err != nil {
		t.Fatalf("TrackCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("TrackCount() = %d after prune, want 1", count)
	}
	tracks, err := l.AlbumTracks("Alpha", "First")
	if err != nil || len(tracks) != 1 || tracks[0].Title != "Kept" {
		t.Errorf("AlbumTracks() after prune = %v, %v", tracks, err)
	}
}
