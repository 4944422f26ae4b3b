package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vlist/internal/engine"
	"vlist/internal/store"
)

// session is one engine restored from the configured store, with a writer attached.
type session struct {
	kv     store.KV
	writer *store.Writer
	eng    *engine.Engine
	report store.LoadReport
}

func openSession(ctx context.Context, app *App) (*session, error) {
	cfg := app.cfg
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}
	kv, err := store.Open(ctx, cfg.Backend, cfg.Dir)
	if err != nil {
		return nil, err
	}
	st, rep := store.LoadState(ctx, kv, cfg.Size, app.log)

	eng := engine.New(engine.Config{
		Size:     cfg.Size,
		Viewport: cfg.Viewport(),
		Logger:   app.log,
	})
	eng.Restore(st)

	w := store.NewWriter(kv, store.WriterOpts{Interval: cfg.WriteInterval, Logger: app.log})
	eng.SetSink(w)

	return &session{kv: kv, writer: w, eng: eng, report: rep}, nil
}

// Close flushes pending writes. A failed flush is returned: for a one-shot command it means the
// change did not stick.
func (s *session) Close(ctx context.Context) error {
	var errs []error
	if err := s.writer.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("persist: %w", err))
	}
	if err := s.kv.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// withSession runs fn against a fresh session and closes it afterwards.
func withSession(ctx context.Context, app *App, fn func(s *session) error) (err error) {
	s, err := openSession(ctx, app)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
