// Package filter matches the decimal labels of identities against a substring without
// materializing any rows.
package filter

import (
	"bytes"
	"context"
	"iter"
	"runtime"
	"strconv"

	"vlist/internal/model"

	"golang.org/x/sync/errgroup"
)

// Direction is the scan order of Matches.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// parallelThreshold is the domain size above which Count splits the scan across goroutines.
const parallelThreshold = 1 << 16

// Evaluator answers filter queries over the identity space [0, n).
type Evaluator struct {
	n     int
	cache *countCache
}

func New(n int) *Evaluator {
	return &Evaluator{n: max(0, n), cache: newCountCache(defaultCacheSize)}
}

func (e *Evaluator) Size() int { return e.n }

// Label is the text a filter is matched against.
func Label(id model.Identity) string { return strconv.Itoa(id) }

// Match reports whether id's label contains text.
func Match(id model.Identity, text string) bool {
	var buf [20]byte
	return bytes.Contains(strconv.AppendInt(buf[:0], int64(id), 10), []byte(text))
}

// digitsOnly reports whether text could ever occur inside a decimal label.
func digitsOnly(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

// Matches yields the identities whose label contains text, in the given order. The sequence is
// lazy; stopping the range loop stops the scan. An empty text matches every identity.
func (e *Evaluator) Matches(text string, dir Direction) iter.Seq[model.Identity] {
	return func(yield func(model.Identity) bool) {
		if !digitsOnly(text) {
			return
		}
		needle := []byte(text)
		var buf [20]byte
		if dir == Descending {
			for id := e.n - 1; id >= 0; id-- {
				if bytes.Contains(strconv.AppendInt(buf[:0], int64(id), 10), needle) && !yield(id) {
					return
				}
			}
			return
		}
		for id := 0; id < e.n; id++ {
			if bytes.Contains(strconv.AppendInt(buf[:0], int64(id), 10), needle) && !yield(id) {
				return
			}
		}
	}
}

// Count returns the number of identities matching text. Empty text counts the whole domain.
// Results are cached per text.
func (e *Evaluator) Count(text string) int {
	n, _ := e.CountContext(context.Background(), text)
	return n
}

// CountContext is Count with cancellation. A cancelled scan returns ctx.Err() and is not cached.
func (e *Evaluator) CountContext(ctx context.Context, text string) (int, error) {
	if text == "" {
		return e.n, nil
	}
	if !digitsOnly(text) {
		return 0, nil
	}
	if n, ok := e.cache.get(text); ok {
		return n, nil
	}
	n, err := e.scanCount(ctx, text)
	if err != nil {
		return 0, err
	}
	e.cache.put(text, n)
	return n, nil
}

func (e *Evaluator) scanCount(ctx context.Context, text string) (int, error) {
	if e.n < parallelThreshold {
		return countRange(ctx, []byte(text), 0, e.n)
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (e.n + workers - 1) / workers
	counts := make([]int, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(e.n, lo+chunk)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			n, err := countRange(gctx, []byte(text), lo, hi)
			counts[w] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func countRange(ctx context.Context, needle []byte, lo, hi int) (int, error) {
	var buf [20]byte
	n := 0
	for id := lo; id < hi; id++ {
		if id&0xffff == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if bytes.Contains(strconv.AppendInt(buf[:0], int64(id), 10), needle) {
			n++
		}
	}
	return n, nil
}

// MatchWindow returns the matches whose rank among all matches falls in
// [start-overscan, end+overscan], together with the rank of the first returned identity.
// The scan stops as soon as the window is full.
func (e *Evaluator) MatchWindow(text string, start, end, overscan int) (first int, ids []model.Identity) {
	lo := max(0, start-max(0, overscan))
	hi := end + max(0, overscan)
	if hi < lo {
		return lo, nil
	}
	rank := 0
	for id := range e.Matches(text, Ascending) {
		if rank > hi {
			break
		}
		if rank >= lo {
			ids = append(ids, id)
		}
		rank++
	}
	return lo, ids
}

// MatchesInPositionWindow maps a window of filtered positions to identities: position k under
// filtering is the k-th match.
func (e *Evaluator) MatchesInPositionWindow(text string, start, end, overscan int) []model.Identity {
	_, ids := e.MatchWindow(text, start, end, overscan)
	return ids
}
