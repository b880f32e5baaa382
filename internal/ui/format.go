package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/caprica/chooui/internal/media"
)

// formatDuration renders a duration as m:ss, or h:mm:ss above an hour.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// trackLine renders one track row for a list panel.
func trackLine(t media.Track) string {
	num := "  "
	if t.TrackNumber > 0 {
		num = fmt.Sprintf("%2d", t.TrackNumber)
	}
	line := fmt.Sprintf("%s  %s  %s", num, t.Title, formatDuration(t.Duration))
	if t.Rating > 0 {
		line += "  " + strings.Repeat("*", int(t.Rating))
	}
	return line
}

// parseSearch turns the search input into a query. Field prefixes
// (artist:, album:, track:) scope a term; anything else matches any
// field.
func parseSearch(input string) media.SearchQuery {
	var q media.SearchQuery
	var any []string
	for _, term := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(term, "artist:"):
			q.Artist = strings.TrimPrefix(term, "artist:")
		case strings.HasPrefix(term, "album:"):
			q.Album = strings.TrimPrefix(term, "album:")
		case strings.HasPrefix(term, "track:"):
			q.Track = strings.TrimPrefix(term, "track:")
		default:
			any = append(any, term)
		}
	}
	q.Any = strings.Join(any, " ")
	return q
}
