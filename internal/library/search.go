package library

import (
	"strings"

	"github.com/caprica/chooui/internal/media"
)

// searchLimit caps a single search result set.
const searchLimit = 500

// Search returns the catalog tracks matching the query. Per-field terms
// match their field; the free-text term matches artist, album or title.
func (l *Library) Search(q media.SearchQuery) ([]media.Track, error) {
	var (
		where []string
		args  []any
	)
	if q.Any != "" {
		where = append(where, `(t.artist LIKE ? ESCAPE '\' OR t.album LIKE ? ESCAPE '\' OR t.title LIKE ? ESCAPE '\')`)
		p := pattern(q.Any)
		args = append(args, p, p, p)
	}
	if q.Artist != "" {
		where = append(where, `t.artist LIKE ? ESCAPE '\'`)
		args = append(args, pattern(q.Artist))
	}
	if q.Album != "" {
		where = append(where, `t.album LIKE ? ESCAPE '\'`)
		args = append(args, pattern(q.Album))
	}
	if q.Track != "" {
		where = append(where, `t.title LIKE ? ESCAPE '\'`)
		args = append(args, pattern(q.Track))
	}
	if len(where) == 0 {
		return nil, nil
	}

	query := `SELECT ` + trackColumns + trackJoin + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY t.artist COLLATE NOCASE, t.album COLLATE NOCASE, t.track_number
		LIMIT ?`
	args = append(args, searchLimit)

	return l.queryTracks(query, args...)
}

func pattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
