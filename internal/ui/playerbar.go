package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/caprica/chooui/internal/player"
)

const minProgressWidth = 5

// renderPlayerBar renders the bottom bar: state, now playing, progress
// and volume.
func (m Model) renderPlayerBar(width int) string {
	st := m.status

	var left string
	switch st.State {
	case player.Playing:
		left = "▶"
	case player.Paused:
		left = "⏸"
	default:
		left = "⏹"
	}

	title := st.Title
	if st.Current != nil {
		title = fmt.Sprintf("%s - %s", st.Current.Artist, st.Current.Title)
	}
	if title == "" {
		title = "nothing playing"
	}

	volume := fmt.Sprintf("vol %d%%", st.Volume)
	if st.Muted {
		volume = "muted"
	}
	right := fmt.Sprintf("%s  repeat %s  %s/%s",
		volume, st.RepeatMode, formatDuration(st.Position), formatDuration(st.Duration))

	barWidth := width - len([]rune(left)) - lenRunes(title) - lenRunes(right) - 8
	progress := ""
	if barWidth >= minProgressWidth {
		progress = renderProgress(barWidth, st.Position, st.Duration)
	}

	return fmt.Sprintf(" %s %s  %s  %s", left, titleStyle.Render(title), progress, mutedStyle.Render(right))
}

// renderProgress renders a fixed-width progress bar.
func renderProgress(width int, position, duration time.Duration) string {
	filled := 0
	if duration > 0 {
		filled = int(int64(width) * int64(position) / int64(duration))
		filled = min(filled, width)
	}
	return strings.Repeat("━", filled) + strings.Repeat("╌", width-filled)
}

func lenRunes(s string) int {
	return len([]rune(s))
}
