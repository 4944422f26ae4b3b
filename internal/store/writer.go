package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Sink accepts fire-and-forget writes.
type Sink interface {
	Put(key, value string)
}

// Writer coalesces writes per key and flushes them to a KV on a background goroutine, at most
// once per interval. Only the latest value for a key is written. A failed write is logged and
// kept pending for the next flush; it never blocks the caller.
type Writer struct {
	kv      KV
	log     *slog.Logger
	limiter *rate.Limiter

	mu      sync.Mutex
	pending map[string]string
	failed  int
	lastErr error
	closed  bool

	// flushMu keeps flushes ordered so an older value can never land after a newer one.
	flushMu sync.Mutex

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

type WriterOpts struct {
	// Interval is the minimum time between background flushes (default 250ms).
	Interval time.Duration
	Logger   *slog.Logger
}

func NewWriter(kv KV, opts WriterOpts) *Writer {
	interval := opts.Interval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer{
		kv:      kv,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		pending: map[string]string{},
		wake:    make(chan struct{}, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	// Start with an empty bucket so the first burst of writes is coalesced too.
	w.limiter.Allow()
	go w.loop(ctx)
	return w
}

func (w *Writer) Put(key, value string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn("write after close dropped", "key", key)
		return
	}
	w.pending[key] = value
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Writer) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		// ctx only stops the loop between flushes; Close waits for a flush already under way.
		_ = w.flush(context.WithoutCancel(ctx))
	}
}

// Flush writes everything pending now, bypassing the rate limit.
func (w *Writer) Flush(ctx context.Context) error {
	return w.flush(ctx)
}

func (w *Writer) flush(ctx context.Context) error {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.mu.Lock()
	batch := w.pending
	w.pending = map[string]string{}
	w.mu.Unlock()

	var errs []error
	for k, v := range batch {
		if err := w.kv.Set(ctx, k, v); err != nil {
			w.log.Warn("persist failed", "key", k, "err", err)
			errs = append(errs, err)
			w.mu.Lock()
			w.failed++
			w.lastErr = err
			// Retry on the next flush unless a newer value has arrived meanwhile.
			if _, newer := w.pending[k]; !newer {
				w.pending[k] = v
			}
			w.mu.Unlock()
			continue
		}
		w.log.Debug("persisted", "key", k, "bytes", len(v))
	}
	return errors.Join(errs...)
}

// Failures returns how many writes failed and the most recent error.
func (w *Writer) Failures() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failed, w.lastErr
}

// Close stops the background loop, waits for a flush already in progress, then flushes whatever
// is still pending (including values whose earlier write failed).
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	<-w.done
	return w.flush(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
