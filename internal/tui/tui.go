// Package tui is the interactive list: a bubbletea program driving one engine.
package tui

import (
	"log/slog"
	"time"

	"vlist/internal/engine"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	// FilterDebounce delays applying filter input (default 300ms).
	FilterDebounce time.Duration
	Logger         *slog.Logger
}

// Run blocks until the user quits. The engine is only touched from the program's update loop.
func Run(eng *engine.Engine, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(eng, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
