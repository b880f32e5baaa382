package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/media"
)

func (m Model) queueTracks() []media.Track {
	tracks := make([]media.Track, 0, len(m.queue.Played)+len(m.queue.Queued))
	tracks = append(tracks, m.queue.Played...)
	tracks = append(tracks, m.queue.Queued...)
	return tracks
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tracks := m.queueTracks()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.queueCursor < len(tracks)-1 {
			m.queueCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.queueCursor > 0 {
			m.queueCursor--
		}
	case key.Matches(msg, m.keys.Remove):
		if m.queueCursor < len(tracks) {
			m.send(event.RemoveTracksRequested{IDs: []int64{tracks[m.queueCursor].ID}})
		}
	case key.Matches(msg, m.keys.Rate):
		if m.queueCursor < len(tracks) {
			m.rateTrack(tracks[m.queueCursor], msg)
		}
	case key.Matches(msg, m.keys.Enter):
		m.send(event.PlayPlaylistRequested{})
	}
	return m, nil
}

// renderQueue renders the queue panel: history, current track, future.
func (m Model) renderQueue(width, height int) string {
	tracks := m.queueTracks()
	currentIdx := len(m.queue.Played) - 1

	rows := make([]string, 0, len(tracks))
	for i, t := range tracks {
		row := fmt.Sprintf("%s - %s  %s", t.Artist, t.Title, formatDuration(t.Duration))
		switch {
		case i == currentIdx:
			row = playingStyle.Render("▶ " + row)
		case i < currentIdx:
			row = mutedStyle.Render("  " + row)
		default:
			row = "  " + row
		}
		rows = append(rows, row)
	}

	header := fmt.Sprintf("Queue  %s, %s",
		english.Plural(len(tracks), "track", ""),
		formatDuration(m.queue.TotalDuration))

	lines := []string{titleStyle.Render(header), ""}
	lines = append(lines, renderList(rows, m.queueCursor, m.focus == focusQueue, height-2)...)
	return pad(strings.Join(lines, "\n"), width, height)
}
