package store

import (
	"context"
	"errors"
	"log/slog"

	"vlist/internal/model"
	"vlist/internal/order"
)

// State is everything restored on launch.
type State struct {
	Overrides    []model.Override `json:"overrides"`
	Checked      []model.Identity `json:"checked"`
	ScrollOffset int              `json:"scrollOffset"`
	Filter       string           `json:"filter"`
}

// Discard records a persisted value that was dropped at load time.
type Discard struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// LoadReport lists values that were present but unusable.
type LoadReport struct {
	Discarded []Discard `json:"discarded,omitempty"`
}

func (r *LoadReport) discard(log *slog.Logger, key string, err error) {
	r.Discarded = append(r.Discarded, Discard{Key: key, Reason: err.Error()})
	log.Warn("discarding persisted value", "key", key, "err", err)
}

// LoadState reads every key for a domain of n identities.
//
// Each key is decoded on its own; a value that does not parse (or an override table that is not a
// bijection over [0, n)) is dropped wholesale and its zero value is used instead. Read errors are
// treated the same way, so LoadState never fails.
func LoadState(ctx context.Context, kv KV, n int, log *slog.Logger) (State, LoadReport) {
	if log == nil {
		log = discardLogger()
	}
	var st State
	var rep LoadReport
	if kv == nil {
		return st, rep
	}

	if v, ok := get(ctx, kv, KeySortOrder, &rep, log); ok {
		ovr, err := DecodeOverrides(v)
		if err == nil {
			err = order.Validate(n, ovr)
		}
		if err != nil {
			rep.discard(log, KeySortOrder, err)
		} else {
			st.Overrides = ovr
		}
	}

	if v, ok := get(ctx, kv, KeyChecked, &rep, log); ok {
		ids, err := DecodeChecked(v, n)
		if err != nil {
			rep.discard(log, KeyChecked, err)
		} else {
			st.Checked = ids
		}
	}

	if v, ok := get(ctx, kv, KeyScrollTop, &rep, log); ok && v != "" {
		off, err := DecodeScroll(v)
		if err != nil {
			rep.discard(log, KeyScrollTop, err)
		} else {
			st.ScrollOffset = off
		}
	}

	if v, ok := get(ctx, kv, KeySearch, &rep, log); ok {
		st.Filter = v
	}
	return st, rep
}

func get(ctx context.Context, kv KV, key string, rep *LoadReport, log *slog.Logger) (string, bool) {
	v, ok, err := kv.Get(ctx, key)
	if err != nil {
		rep.discard(log, key, err)
		return "", false
	}
	return v, ok
}

// Reset deletes every persisted key.
func Reset(ctx context.Context, kv KV) error {
	var errs []error
	for _, k := range AllKeys {
		if err := kv.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
