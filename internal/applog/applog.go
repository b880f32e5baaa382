// Package applog configures the application logger. The terminal
// belongs to the TUI, so the logger writes to a state file instead.
package applog

import (
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// New returns a file-backed logger and its close function. When the
// log file cannot be opened the logger discards output rather than
// failing startup.
func New() (*log.Logger, func()) {
	path, err := xdg.StateFile("chooui/chooui.log")
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	return logger, func() { f.Close() }
}
