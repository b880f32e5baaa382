package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caprica/chooui/internal/applog"
	"github.com/caprica/chooui/internal/config"
	"github.com/caprica/chooui/internal/dispatcher"
	"github.com/caprica/chooui/internal/engine"
	"github.com/caprica/chooui/internal/event"
	"github.com/caprica/chooui/internal/library"
	"github.com/caprica/chooui/internal/player"
	"github.com/caprica/chooui/internal/queue"
	"github.com/caprica/chooui/internal/tasks"
	"github.com/caprica/chooui/internal/ui"
)

const (
	eventBufferSize   = 256
	commandBufferSize = 64
	taskBufferSize    = 64
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog := applog.New()
	defer closeLog()

	dbPath := cfg.DatabaseFile
	if dbPath == "" {
		dbPath = filepath.Join(xdg.DataHome, "chooui", "catalog.db")
	}
	lib, err := library.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer lib.Close()

	events := make(chan event.Event, eventBufferSize)
	engineCmds := make(chan engine.Command, commandBufferSize)
	taskCh := make(chan tasks.Task, taskBufferSize)

	snapshots := queue.NewPublisher()
	board := dispatcher.NewBoard()

	worker := engine.NewWorker(player.New(), engineCmds, events)
	executor := tasks.NewExecutor(lib, cfg.MediaDirs, taskCh, events)

	prog := tea.NewProgram(
		ui.New(events, board, snapshots, cfg.SeekDelta(), cfg.VolumeStep),
		tea.WithAltScreen(),
	)

	disp := dispatcher.New(dispatcher.Config{
		Events:        events,
		EngineCmds:    engineCmds,
		EngineDone:    worker.Done(),
		Tasks:         taskCh,
		TasksDone:     executor.Done(),
		Snapshots:     snapshots,
		Board:         board,
		Refresh:       func() { prog.Send(ui.RefreshMsg{}) },
		InitialRepeat: dispatcher.ParseRepeatMode(cfg.Repeat),
		Log:           logger,
	})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		worker.Run()
	}()
	go func() {
		defer wg.Done()
		executor.Run()
	}()
	go func() {
		defer wg.Done()
		disp.Run()
		// The dispatcher is the only sender on the worker channels;
		// closing them terminates both workers.
		close(engineCmds)
		close(taskCh)
	}()

	// Populate the browser before the first keypress.
	taskCh <- tasks.FetchArtists{}
	if len(cfg.MediaDirs) > 0 {
		taskCh <- tasks.ScanCatalog{}
	}

	_, runErr := prog.Run()

	// Unblock the dispatcher if the UI exited without a quit key.
	select {
	case events <- event.Exit{}:
	default:
	}

	// A worker mid-scan can still be emitting progress events after the
	// dispatcher has exited; keep the event channel moving or it never
	// observes its input closing.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	drainEvents(events, done)

	return runErr
}

// drainEvents discards events until done closes.
func drainEvents(events <-chan event.Event, done <-chan struct{}) {
	for {
		select {
		case <-events:
		case <-done:
			return
		}
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chooui: %v\n", err)
		os.Exit(1)
	}
}
