package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vlist/internal/tui"

	"github.com/spf13/cobra"
)

const logFileName = "vlist.log"

func runTUI(cmd *cobra.Command, app *App) error {
	if err := os.MkdirAll(app.cfg.Dir, 0o755); err != nil {
		return writeErr(cmd, err)
	}
	// The alt screen owns the terminal, so logs go to a file.
	f, err := os.OpenFile(filepath.Join(app.cfg.Dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("open log: %w", err))
	}
	defer f.Close()
	app.log = newLogger(f, app.cfg.LogLevel)

	ctx := cmd.Context()
	s, err := openSession(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	for _, d := range s.report.Discarded {
		fmt.Fprintf(cmd.ErrOrStderr(), "discarded persisted %s: %s\n", d.Key, d.Reason)
	}
	app.log.Info("starting", "dir", app.cfg.Dir, "backend", app.cfg.Backend, "size", app.cfg.Size,
		"overrides", s.eng.Index().Len(), "checked", s.eng.Selection().Len())

	runErr := tui.Run(s.eng, tui.Options{FilterDebounce: app.cfg.FilterDebounce, Logger: app.log})

	// Give the final flush a bounded amount of time so quitting never hangs on a stuck disk.
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Close(flushCtx); err != nil {
		app.log.Error("final flush failed", "err", err)
		if runErr == nil {
			runErr = err
		}
	}
	if n, last := s.writer.Failures(); n > 0 {
		app.log.Warn("some writes failed during the session", slog.Int("count", n), "last", last)
	}
	if runErr != nil {
		return writeErr(cmd, runErr)
	}
	return nil
}
