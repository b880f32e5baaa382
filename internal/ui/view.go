package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	header := m.renderHeader()
	footer := m.renderPlayerBar(m.width)
	searchLine := ""
	if m.focus == focusSearch {
		searchLine = " / " + m.search.View()
	}

	// Panels fill the space between header and footer; the borders
	// cost two rows and two columns each.
	panelHeight := m.height - 2 - 1
	if searchLine != "" {
		panelHeight--
	}
	if panelHeight < 3 {
		panelHeight = 3
	}
	browserWidth := m.width / 2
	queueWidth := m.width - browserWidth

	browser := panelStyle(m.focus == focusBrowser).
		Width(browserWidth - 2).
		Height(panelHeight - 2).
		Render(m.renderBrowser(browserWidth-2, panelHeight-2))
	queuePanel := panelStyle(m.focus == focusQueue).
		Width(queueWidth - 2).
		Height(panelHeight - 2).
		Render(m.renderQueue(queueWidth-2, panelHeight-2))

	body := lipgloss.JoinHorizontal(lipgloss.Top, browser, queuePanel)

	if searchLine != "" {
		return header + "\n" + body + "\n" + searchLine + "\n" + footer
	}
	return header + "\n" + body + "\n" + footer
}

func (m Model) renderHeader() string {
	left := titleStyle.Render(" chooui ")
	catalog := fmt.Sprintf("%s tracks", humanize.Comma(m.status.CatalogSize))

	right := mutedStyle.Render(catalog)
	switch {
	case m.status.Scanning:
		right = mutedStyle.Render(fmt.Sprintf("scanning %s (%d)", m.status.ScanPath, m.status.ScanCount))
	case m.status.LastError != "":
		right = errorStyle.Render(m.status.LastError)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
