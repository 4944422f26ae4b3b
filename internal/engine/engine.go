// Package engine ties the window calculator, order index, filter evaluator and selection set
// into one long-lived instance that owns all list state.
//
// An Engine is not safe for concurrent use. Hosts that receive events on several goroutines must
// funnel them through a single writer (the TUI does this by construction: every event is handled
// inside bubbletea's Update).
package engine

import (
	"io"
	"log/slog"

	"vlist/internal/filter"
	"vlist/internal/model"
	"vlist/internal/order"
	"vlist/internal/selection"
	"vlist/internal/store"
	"vlist/internal/window"
)

// DefaultSize is the number of rows when no size is configured.
const DefaultSize = 1_000_000

type Config struct {
	// Size is the fixed identity space [0, Size).
	Size int
	// Viewport is the initial geometry; ScrollOffset is usually overwritten by Restore.
	Viewport model.Viewport
	// Label renders a row label. Defaults to the decimal identity.
	Label  func(model.Identity) string
	Logger *slog.Logger
}

type Engine struct {
	n      int
	index  *order.Index
	filter *filter.Evaluator
	sel    *selection.Set
	label  func(model.Identity) string
	log    *slog.Logger

	// sink is optional: without one the engine runs purely in memory.
	sink store.Sink

	viewport   model.Viewport
	filterText string

	rng  model.Range
	rows []model.Row
}

func New(cfg Config) *Engine {
	n := cfg.Size
	if n <= 0 {
		n = DefaultSize
	}
	label := cfg.Label
	if label == nil {
		label = filter.Label
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	vp := cfg.Viewport
	if vp.RowHeight <= 0 {
		vp.RowHeight = 1
	}
	e := &Engine{
		n:        n,
		index:    order.New(n),
		filter:   filter.New(n),
		sel:      selection.New(),
		label:    label,
		log:      log,
		viewport: vp,
	}
	e.refresh()
	return e
}

func (e *Engine) Size() int                     { return e.n }
func (e *Engine) Index() *order.Index           { return e.index }
func (e *Engine) Filter() *filter.Evaluator     { return e.filter }
func (e *Engine) Selection() *selection.Set     { return e.sel }
func (e *Engine) Viewport() model.Viewport      { return e.viewport }
func (e *Engine) FilterText() string            { return e.filterText }
func (e *Engine) Range() model.Range            { return e.rng }
func (e *Engine) Label(id model.Identity) string { return e.label(id) }

// Rows returns the currently materialized window. The slice must not be modified.
func (e *Engine) Rows() []model.Row { return e.rows }

// SetSink attaches a persistence sink. Passing nil detaches it.
func (e *Engine) SetSink(s store.Sink) { e.sink = s }

// Persister returns the attached sink, if any.
func (e *Engine) Persister() (store.Sink, bool) {
	return e.sink, e.sink != nil
}

// Restore replaces all engine state with st. Overrides must already be validated for this
// domain size (store.LoadState does that). Nothing is written back.
func (e *Engine) Restore(st store.State) {
	e.index.Restore(st.Overrides)
	e.sel.Replace(st.Checked)
	e.filterText = st.Filter
	e.viewport.ScrollOffset = st.ScrollOffset
	e.refresh()
}

// State is the persistable view of the engine.
func (e *Engine) State() store.State {
	return store.State{
		Overrides:    e.index.Snapshot(),
		Checked:      e.sel.IDs(),
		ScrollOffset: e.viewport.ScrollOffset,
		Filter:       e.filterText,
	}
}

// Count is the number of rows that participate under the current filter.
func (e *Engine) Count() int { return e.filter.Count(e.filterText) }

// SetViewport updates the geometry (typically on a resize) and rematerializes.
func (e *Engine) SetViewport(v model.Viewport) []model.Row {
	if v.RowHeight <= 0 {
		v.RowHeight = 1
	}
	prev := e.viewport.ScrollOffset
	e.viewport = v
	e.refresh()
	if e.viewport.ScrollOffset != prev {
		e.put(store.KeyScrollTop, store.EncodeScroll(e.viewport.ScrollOffset))
	}
	return e.rows
}

// ScrollTo moves the viewport to offset (clamped to the scrollable height) and rematerializes.
func (e *Engine) ScrollTo(offset int) []model.Row {
	v := e.viewport
	v.ScrollOffset = offset
	return e.SetViewport(v)
}

// ScrollBy scrolls by delta rows.
func (e *Engine) ScrollBy(rows int) []model.Row {
	return e.ScrollTo(e.viewport.ScrollOffset + rows*e.viewport.RowHeight)
}

// SetFilter changes the filter text, keeps the scroll offset inside the new scrollable height and
// rematerializes.
func (e *Engine) SetFilter(text string) []model.Row {
	if text == e.filterText {
		return e.rows
	}
	e.filterText = text
	e.put(store.KeySearch, text)
	prev := e.viewport.ScrollOffset
	e.refresh()
	if e.viewport.ScrollOffset != prev {
		e.put(store.KeyScrollTop, store.EncodeScroll(e.viewport.ScrollOffset))
	}
	return e.rows
}

// Toggle flips the checked flag of id and persists the selection.
func (e *Engine) Toggle(id model.Identity) (bool, error) {
	if id < 0 || id >= e.n {
		return false, order.ErrOutOfRange
	}
	on := e.sel.Toggle(id)
	e.put(store.KeyChecked, store.EncodeChecked(e.sel.IDs()))
	return on, nil
}

func (e *Engine) IsSelected(id model.Identity) bool { return e.sel.IsSelected(id) }

// Move places id before or after ref (see order.Index.Move), rematerializes and persists.
func (e *Engine) Move(id, ref model.Identity, place order.Placement) error {
	if err := e.index.Move(id, ref, place); err != nil {
		e.log.Debug("move rejected", "id", id, "ref", ref, "place", place.String(), "err", err)
		return err
	}
	e.afterReorder()
	return nil
}

// MoveTo puts id into target's slot regardless of what is on screen. Reorder is the
// window-checked variant used for interactive drops.
func (e *Engine) MoveTo(id, target model.Identity) error {
	if err := e.index.MoveTo(id, target); err != nil {
		e.log.Debug("move rejected", "id", id, "target", target, "err", err)
		return err
	}
	e.afterReorder()
	return nil
}

// Compact drops overrides that agree with the default order and persists the smaller table.
func (e *Engine) Compact() int {
	n := e.index.Compact()
	if n > 0 {
		e.persistOrder()
	}
	return n
}

func (e *Engine) afterReorder() {
	e.refresh()
	e.persistOrder()
}

func (e *Engine) persistOrder() {
	if e.sink == nil {
		return
	}
	v, err := store.EncodeOverrides(e.index.Snapshot())
	if err != nil {
		e.log.Warn("encode sort order", "err", err)
		return
	}
	e.sink.Put(store.KeySortOrder, v)
}

func (e *Engine) put(key, value string) {
	if e.sink == nil {
		return
	}
	e.sink.Put(key, value)
}

// refresh clamps the scroll offset to the current scrollable height and rematerializes.
func (e *Engine) refresh() {
	count := e.Count()
	v := e.viewport
	e.viewport.ScrollOffset = window.ClampScroll(v.ScrollOffset, v.ViewportHeight, v.RowHeight, count)
	e.rng = window.ForViewport(e.viewport, count)
	e.rows = e.Materialize(e.rng, e.filterText)
}
