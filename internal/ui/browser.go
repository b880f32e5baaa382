package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/media"
)

// browserLen returns the number of rows at the current browser level.
func (m Model) browserLen() int {
	switch m.level {
	case levelArtists:
		return len(m.status.Artists)
	case levelAlbums:
		return len(m.status.Albums)
	case levelTracks:
		return len(m.status.Tracks)
	case levelSearch:
		return len(m.status.SearchResults)
	}
	return 0
}

func (m Model) browserTracks() []media.Track {
	if m.level == levelSearch {
		return m.status.SearchResults
	}
	return m.status.Tracks
}

func (m Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.browserLen()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Back):
		switch m.level {
		case levelAlbums, levelSearch:
			m.level = levelArtists
			m.cursor = 0
		case levelTracks:
			m.level = levelAlbums
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Enter):
		m.enterBrowserRow()
	case key.Matches(msg, m.keys.Add):
		m.queueBrowserRow()
	case key.Matches(msg, m.keys.Rate):
		if m.level == levelTracks || m.level == levelSearch {
			tracks := m.browserTracks()
			if m.cursor < len(tracks) {
				m.rateTrack(tracks[m.cursor], msg)
			}
		}
	}
	return m, nil
}

// enterBrowserRow descends one level, or plays the track under the
// cursor at the bottom level.
func (m *Model) enterBrowserRow() {
	switch m.level {
	case levelArtists:
		if m.cursor < len(m.status.Artists) {
			m.level = levelAlbums
			artist := m.status.Artists[m.cursor]
			m.cursor = 0
			m.send(event.BrowseArtistRequested{Artist: artist})
		}
	case levelAlbums:
		if m.cursor < len(m.status.Albums) {
			m.level = levelTracks
			album := m.status.Albums[m.cursor]
			m.cursor = 0
			m.send(event.BrowseAlbumRequested{Artist: m.status.BrowsedArtist, Album: album})
		}
	case levelTracks, levelSearch:
		tracks := m.browserTracks()
		if m.cursor < len(tracks) {
			m.send(event.PlayTrackRequested{Track: tracks[m.cursor]})
		}
	}
}

// queueBrowserRow appends the row under the cursor to the queue: a
// whole artist, a whole album, or a single track.
func (m *Model) queueBrowserRow() {
	switch m.level {
	case levelArtists:
		if m.cursor < len(m.status.Artists) {
			m.send(event.CollectArtistRequested{Artist: m.status.Artists[m.cursor]})
		}
	case levelAlbums:
		if m.cursor < len(m.status.Albums) {
			m.send(event.CollectAlbumRequested{
				Artist: m.status.BrowsedArtist,
				Album:  m.status.Albums[m.cursor],
			})
		}
	case levelTracks, levelSearch:
		tracks := m.browserTracks()
		if m.cursor < len(tracks) {
			m.send(event.CollectTrackRequested{ID: tracks[m.cursor].ID})
		}
	}
}

func (m Model) browserTitle() string {
	switch m.level {
	case levelAlbums:
		return m.status.BrowsedArtist
	case levelTracks:
		return m.status.BrowsedArtist + " / " + m.status.BrowsedAlbum
	case levelSearch:
		return "Search results"
	}
	return "Library"
}

// renderBrowser renders the browser panel at the given inner size.
func (m Model) renderBrowser(width, height int) string {
	var rows []string
	switch m.level {
	case levelArtists:
		for _, a := range m.status.Artists {
			rows = append(rows, a)
		}
	case levelAlbums:
		for _, a := range m.status.Albums {
			rows = append(rows, a)
		}
	default:
		for _, t := range m.browserTracks() {
			rows = append(rows, trackLine(t))
		}
	}

	lines := []string{titleStyle.Render(m.browserTitle()), ""}
	lines = append(lines, renderList(rows, m.cursor, m.focus == focusBrowser, height-2)...)
	return pad(strings.Join(lines, "\n"), width, height)
}

// renderList windows rows around the cursor and highlights it when the
// panel has focus.
func renderList(rows []string, cursor int, focused bool, height int) []string {
	if height < 1 {
		height = 1
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, len(rows))

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		if i == cursor && focused {
			row = cursorStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		out = append(out, row)
	}
	return out
}

// pad clips and pads a block of text to the given size.
func pad(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if width > 0 {
		clip := lipgloss.NewStyle().MaxWidth(width)
		for i, line := range lines {
			lines[i] = clip.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
