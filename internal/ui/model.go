// Package ui implements the terminal interface: a library browser, the
// playback queue and a player bar. It renders from the published
// status and queue snapshot only and talks back through events.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caprica/chooui/internal/dispatcher"
	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/media"
	"github.com/caprica/chooui/internal/queue"
)

// RefreshMsg asks the UI to re-read the published status and queue
// snapshot. The dispatcher sends one per processed event.
type RefreshMsg struct{}

type focus int

const (
	focusBrowser focus = iota
	focusQueue
	focusSearch
)

type browserLevel int

const (
	levelArtists browserLevel = iota
	levelAlbums
	levelTracks
	levelSearch
)

// Model is the bubbletea model for the whole screen.
type Model struct {
	events    chan<- event.Event
	board     *dispatcher.Board
	snapshots *queue.Publisher

	status dispatcher.Status
	queue  queue.Snapshot

	width  int
	height int

	focus       focus
	level       browserLevel
	cursor      int
	queueCursor int

	search textinput.Model
	keys   keyMap

	seekDelta  time.Duration
	volumeStep int
}

// New creates the UI model.
func New(events chan<- event.Event, board *dispatcher.Board, snapshots *queue.Publisher, seekDelta time.Duration, volumeStep int) Model {
	search := textinput.New()
	search.Placeholder = "search (artist: album: track: prefixes)"
	search.CharLimit = 120

	return Model{
		events:     events,
		board:      board,
		snapshots:  snapshots,
		search:     search,
		keys:       defaultKeyMap(),
		seekDelta:  seekDelta,
		volumeStep: volumeStep,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		m.status = m.board.Load()
		m.queue = m.snapshots.Load()
		m.clampCursors()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.send(event.Exit{})
		return m, tea.Quit
	case key.Matches(msg, m.keys.FocusNext):
		if m.focus == focusBrowser {
			m.focus = focusQueue
		} else {
			m.focus = focusBrowser
		}
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.search.SetValue("")
		m.search.Focus()
		return m, textinput.Blink

	// Playback, regardless of focused panel
	case key.Matches(msg, m.keys.PlayPause):
		m.send(event.TogglePauseRequested{})
	case key.Matches(msg, m.keys.Stop):
		m.send(event.StopRequested{})
	case key.Matches(msg, m.keys.Next):
		m.send(event.NextTrackRequested{})
	case key.Matches(msg, m.keys.Previous):
		m.send(event.PreviousTrackRequested{})
	case key.Matches(msg, m.keys.SeekBack):
		m.send(event.SeekRequested{Delta: -m.seekDelta})
	case key.Matches(msg, m.keys.SeekFwd):
		m.send(event.SeekRequested{Delta: m.seekDelta})
	case key.Matches(msg, m.keys.VolumeUp):
		m.send(event.AdjustVolumeRequested{Delta: m.volumeStep})
	case key.Matches(msg, m.keys.VolumeDown):
		m.send(event.AdjustVolumeRequested{Delta: -m.volumeStep})
	case key.Matches(msg, m.keys.Mute):
		m.send(event.ToggleMuteRequested{})
	case key.Matches(msg, m.keys.Repeat):
		m.send(event.CycleRepeatModeRequested{})
	case key.Matches(msg, m.keys.Shuffle):
		m.send(event.ShuffleQueueRequested{})
	case key.Matches(msg, m.keys.ClearQueue):
		m.send(event.ClearQueueRequested{})
	case key.Matches(msg, m.keys.ResetQueue):
		m.send(event.ResetQueueRequested{})
	case key.Matches(msg, m.keys.Rescan):
		m.send(event.ScanRequested{})

	default:
		if m.focus == focusQueue {
			return m.handleQueueKey(msg)
		}
		return m.handleBrowserKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusBrowser
		m.search.Blur()
		return m, nil
	case "enter":
		query := parseSearch(m.search.Value())
		m.focus = focusBrowser
		m.level = levelSearch
		m.cursor = 0
		m.search.Blur()
		m.send(event.SearchRequested{Query: query})
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) send(ev event.Event) {
	m.events <- ev
}

// rateTrack maps the pressed digit key to a rating for the track.
func (m *Model) rateTrack(t media.Track, msg tea.KeyMsg) {
	s := msg.String()
	if len(s) != 1 || s[0] < '0' || s[0] > '5' {
		return
	}
	m.send(event.RateTrackRequested{Track: t, Rating: media.Rating(s[0] - '0')})
}

func (m *Model) clampCursors() {
	if n := m.browserLen(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if n := len(m.queue.Played) + len(m.queue.Queued); m.queueCursor >= n {
		m.queueCursor = max(n-1, 0)
	}
}
