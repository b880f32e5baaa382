package library

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/caprica/chooui/internal/media"
)

const numScanWorkers = 8

// ScanEvent reports the progress of a catalog scan. The scanner emits
// events from the calling goroutine only.
type ScanEvent interface {
	isScanEvent()
}

// ScanStarted marks the beginning of a scan.
type ScanStarted struct{}

// DirStarted marks the beginning of one media directory.
type DirStarted struct {
	Dir string
}

// FileProcessed reports one new or modified file. Count is cumulative
// across the whole scan.
type FileProcessed struct {
	Count int
	Path  string
}

// DirFinished marks the end of one media directory.
type DirFinished struct {
	Dir string
}

// ScanFinished marks the end of a scan with the resulting catalog size.
type ScanFinished struct {
	Tracks int64
}

func (ScanStarted) isScanEvent()   {}
func (DirStarted) isScanEvent()    {}
func (FileProcessed) isScanEvent() {}
func (DirFinished) isScanEvent()   {}
func (ScanFinished) isScanEvent()  {}

// fileInfo is a discovered music file.
type fileInfo struct {
	path  string
	mtime int64
}

// trackMeta is the extracted metadata of one music file.
type trackMeta struct {
	fileInfo
	artist   string
	album    string
	title    string
	trackNum int
	duration time.Duration
}

// Scan performs an incremental scan of the given media directories.
// Unchanged files (same path and mtime) are skipped; files no longer on
// disk are pruned from the catalog. emit may be nil.
func (l *Library) Scan(dirs []string, emit func(ScanEvent)) (int64, error) {
	if emit == nil {
		emit = func(ScanEvent) {}
	}
	emit(ScanStarted{})

	existing, err := l.existingFiles()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	processed := 0

	for _, dir := range dirs {
		emit(DirStarted{Dir: dir})

		files := discoverFiles(dir)
		changed := make([]fileInfo, 0, len(files))
		for _, f := range files {
			seen[f.path] = true
			if mtime, ok := existing[f.path]; ok && mtime == f.mtime {
				continue
			}
			changed = append(changed, f)
		}

		for meta := range extractMeta(changed) {
			if err := l.upsertTrack(meta); err != nil {
				return 0, err
			}
			processed++
			emit(FileProcessed{Count: processed, Path: meta.path})
		}

		emit(DirFinished{Dir: dir})
	}

	if err := l.pruneMissing(existing, seen); err != nil {
		return 0, err
	}

	tracks, err := l.TrackCount()
	if err != nil {
		return 0, err
	}
	emit(ScanFinished{Tracks: tracks})
	return tracks, nil
}

// discoverFiles walks one directory and collects music files.
// Unreadable subtrees are skipped rather than failing the scan.
func discoverFiles(dir string) []fileInfo {
	var files []fileInfo
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMusicFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, fileInfo{path: path, mtime: info.ModTime().Unix()})
		return nil
	})
	return files
}

// extractMeta reads tag metadata and stream duration on a small worker
// pool. Files that fail to parse or lack an artist or album are
// dropped.
func extractMeta(files []fileInfo) <-chan trackMeta {
	workCh := make(chan fileInfo, len(files))
	for _, f := range files {
		workCh <- f
	}
	close(workCh)

	out := make(chan trackMeta, numScanWorkers)
	var wg sync.WaitGroup
	for range numScanWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range workCh {
				meta, err := readTrackMeta(f)
				if err != nil || meta.artist == "" || meta.album == "" {
					continue
				}
				out <- meta
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func readTrackMeta(f fileInfo) (trackMeta, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return trackMeta{}, err
	}
	defer file.Close()

	m, err := tag.ReadFrom(file)
	if err != nil {
		return trackMeta{}, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(f.path)
	}
	trackNum, _ := m.Track()

	duration, err := probeDuration(f.path)
	if err != nil {
		return trackMeta{}, err
	}

	return trackMeta{
		fileInfo: f,
		artist:   m.Artist(),
		album:    m.Album(),
		title:    title,
		trackNum: trackNum,
		duration: duration,
	}, nil
}

// probeDuration decodes the stream headers to compute the track length.
func probeDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		return 0, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

func isMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".ogg", ".wav":
		return true
	}
	return false
}

// existingFiles returns the catalog's path to mtime map.
func (l *Library) existingFiles() (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT path, mtime FROM catalog_tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]int64)
	for rows.Next() {
		var (
			path  string
			mtime int64
		)
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		existing[path] = mtime
	}
	return existing, rows.Err()
}

func (l *Library) upsertTrack(meta trackMeta) error {
	now := time.Now().Unix()
	durable := media.DurableID(meta.artist, meta.album, meta.trackNum, meta.title)
	var trackNum sql.NullInt64
	if meta.trackNum > 0 {
		trackNum = sql.NullInt64{Int64: int64(meta.trackNum), Valid: true}
	}
	_, err := l.db.Exec(`
		INSERT INTO catalog_tracks
			(path, mtime, durable_id, artist, album, title, track_number, duration_secs, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			durable_id = excluded.durable_id,
			artist = excluded.artist,
			album = excluded.album,
			title = excluded.title,
			track_number = excluded.track_number,
			duration_secs = excluded.duration_secs,
			updated_at = excluded.updated_at
	`, meta.path, meta.mtime, int64(durable), meta.artist, meta.album, meta.title,
		trackNum, durationToSeconds(meta.duration), now, now)
	return err
}

// pruneMissing removes catalog rows whose files are gone from disk.
func (l *Library) pruneMissing(existing map[string]int64, seen map[string]bool) error {
	return withTx(l.db, func(tx *sql.Tx) error {
		for path := range existing {
			if seen[path] {
				continue
			}
			if _, err := tx.Exec(`DELETE FROM catalog_tracks WHERE path = ?`, path); err != nil {
				return err
			}
		}
		return nil
	})
}

func durationToSeconds(d time.Duration) int64 {
	return int64(d.Round(time.Second) / time.Second)
}

func secondsToDuration(secs int64) time.Duration {
	return time.Duration(secs) * time.Second
}
