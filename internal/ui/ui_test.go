package ui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caprica/chooui/internal/dispatcher"
	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/media"
	"github.com/caprica/chooui/internal/queue"
)

// stripANSI removes ANSI escape codes from a string for easier testing.
func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return re.ReplaceAllString(s, "")
}

func newTestModel() (Model, chan event.Event) {
	events := make(chan event.Event, 32)
	m := New(events, dispatcher.NewBoard(), queue.NewPublisher(), 10*time.Second, 5)
	m.width = 100
	m.height = 30
	return m, events
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func nextEvent(t *testing.T, events chan event.Event) event.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	default:
		t.Fatal("no event emitted")
		return nil
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{3 * time.Minute, "3:00"},
		{3*time.Minute + 20*time.Second, "3:20"},
		{61 * time.Minute, "1:01:00"},
		{-5 * time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSearch(t *testing.T) {
	q := parseSearch("artist:floyd album:wall hey you")
	if q.Artist != "floyd" || q.Album != "wall" || q.Any != "hey you" {
		t.Errorf("parseSearch() = %+v", q)
	}

	q = parseSearch("everything")
	if q.Any != "everything" || q.Artist != "" {
		t.Errorf("parseSearch() = %+v", q)
	}
}

func TestQuitSendsExit(t *testing.T) {
	m, events := newTestModel()
	_, cmd := m.Update(keyMsg("q"))
	if _, ok := nextEvent(t, events).(event.Exit); !ok {
		t.Error("quit key did not send an exit event")
	}
	if cmd == nil {
		t.Error("quit key did not return tea.Quit")
	}
}

func TestPlaybackKeys(t *testing.T) {
	m, events := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if _, ok := nextEvent(t, events).(event.TogglePauseRequested); !ok {
		t.Error("space did not toggle pause")
	}

	m.Update(keyMsg("s"))
	if _, ok := nextEvent(t, events).(event.StopRequested); !ok {
		t.Error("s did not stop")
	}

	m.Update(keyMsg("+"))
	ev, ok := nextEvent(t, events).(event.AdjustVolumeRequested)
	if !ok || ev.Delta != 5 {
		t.Errorf("+ sent %v, want volume +5", ev)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	sk, ok := nextEvent(t, events).(event.SeekRequested)
	if !ok || sk.Delta != 10*time.Second {
		t.Errorf("shift+right sent %v, want seek +10s", sk)
	}
}

func TestBrowserDescendsIntoArtist(t *testing.T) {
	m, events := newTestModel()
	m.status.Artists = []string{"Alpha", "Beta"}
	m.cursor = 1

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	ev, ok := nextEvent(t, events).(event.BrowseArtistRequested)
	if !ok || ev.Artist != "Beta" {
		t.Errorf("enter on artist sent %v, want browse Beta", ev)
	}
	if m.level != levelAlbums || m.cursor != 0 {
		t.Errorf("level = %v cursor = %d after descend", m.level, m.cursor)
	}
}

func TestBrowserQueuesAlbum(t *testing.T) {
	m, events := newTestModel()
	m.level = levelAlbums
	m.status.BrowsedArtist = "Alpha"
	m.status.Albums = []string{"First"}

	m.Update(keyMsg("a"))

	ev, ok := nextEvent(t, events).(event.CollectAlbumRequested)
	if !ok || ev.Artist != "Alpha" || ev.Album != "First" {
		t.Errorf("a on album sent %v", ev)
	}
}

func TestBrowserPlaysTrack(t *testing.T) {
	m, events := newTestModel()
	m.level = levelTracks
	m.status.Tracks = []media.Track{{ID: 7, Title: "Song", Path: "/m/song.mp3"}}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	ev, ok := nextEvent(t, events).(event.PlayTrackRequested)
	if !ok || ev.Track.ID != 7 {
		t.Errorf("enter on track sent %v", ev)
	}
}

func TestRateKeyOnBrowserTrack(t *testing.T) {
	m, events := newTestModel()
	m.level = levelTracks
	m.status.Tracks = []media.Track{{ID: 7, Title: "Song"}}

	m.Update(keyMsg("4"))

	ev, ok := nextEvent(t, events).(event.RateTrackRequested)
	if !ok || ev.Track.ID != 7 || ev.Rating != 4 {
		t.Errorf("4 on track sent %v, want rating 4 for track 7", ev)
	}
}

func TestRateKeyOnQueueRow(t *testing.T) {
	m, events := newTestModel()
	m.focus = focusQueue
	m.queue = queue.Snapshot{Queued: []media.Track{{ID: 3, Title: "a"}}}

	m.Update(keyMsg("0"))

	ev, ok := nextEvent(t, events).(event.RateTrackRequested)
	if !ok || ev.Track.ID != 3 || ev.Rating != 0 {
		t.Errorf("0 on queue row sent %v, want cleared rating for track 3", ev)
	}
}

func TestRateKeyIgnoredOnArtists(t *testing.T) {
	m, events := newTestModel()
	m.status.Artists = []string{"Alpha"}

	m.Update(keyMsg("4"))

	select {
	case ev := <-events:
		t.Errorf("rating an artist row sent %v", ev)
	default:
	}
}

func TestSearchFlow(t *testing.T) {
	m, events := newTestModel()

	updated, _ := m.Update(keyMsg("/"))
	m = updated.(Model)
	if m.focus != focusSearch {
		t.Fatal("search key did not focus the search input")
	}

	for _, r := range "artist:floyd" {
		updated, _ = m.Update(keyMsg(string(r)))
		m = updated.(Model)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	ev, ok := nextEvent(t, events).(event.SearchRequested)
	if !ok || ev.Query.Artist != "floyd" {
		t.Errorf("search flow sent %v", ev)
	}
	if m.focus != focusBrowser || m.level != levelSearch {
		t.Errorf("focus = %v level = %v after search", m.focus, m.level)
	}
}

func TestQueueRemoveKey(t *testing.T) {
	m, events := newTestModel()
	m.focus = focusQueue
	m.queue = queue.Snapshot{
		Queued: []media.Track{{ID: 3, Title: "a"}, {ID: 4, Title: "b"}},
	}
	m.queueCursor = 1

	m.Update(keyMsg("d"))

	ev, ok := nextEvent(t, events).(event.RemoveTracksRequested)
	if !ok || len(ev.IDs) != 1 || ev.IDs[0] != 4 {
		t.Errorf("d on queue row sent %v", ev)
	}
}

func TestViewShowsQueueAndNowPlaying(t *testing.T) {
	m, _ := newTestModel()
	m.status = dispatcher.Status{
		Current:     &media.Track{Artist: "Alpha", Title: "Opener"},
		CatalogSize: 1234,
		Volume:      80,
	}
	m.queue = queue.Snapshot{
		Played:        []media.Track{{Artist: "Alpha", Title: "Opener", Duration: 3 * time.Minute}},
		Queued:        []media.Track{{Artist: "Alpha", Title: "Second", Duration: 3 * time.Minute}},
		TotalDuration: 6 * time.Minute,
	}

	out := stripANSI(m.View())
	if !strings.Contains(out, "Alpha - Opener") {
		t.Errorf("view missing now playing:\n%s", out)
	}
	if !strings.Contains(out, "2 tracks") {
		t.Errorf("view missing queue summary:\n%s", out)
	}
	if !strings.Contains(out, "1,234 tracks") {
		t.Errorf("view missing catalog size:\n%s", out)
	}
}

func TestRefreshReloadsPublishedState(t *testing.T) {
	events := make(chan event.Event, 8)
	board := dispatcher.NewBoard()
	snapshots := queue.NewPublisher()
	m := New(events, board, snapshots, 10*time.Second, 5)
	m.width = 80
	m.height = 24

	board.Publish(dispatcher.Status{Title: "published"})
	snapshots.Publish(queue.Snapshot{Queued: []media.Track{{ID: 1}}})

	updated, _ := m.Update(RefreshMsg{})
	m = updated.(Model)

	if m.status.Title != "published" {
		t.Errorf("status.Title = %q after refresh", m.status.Title)
	}
	if len(m.queue.Queued) != 1 {
		t.Errorf("queue not reloaded on refresh")
	}
}
