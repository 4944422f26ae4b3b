package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"vlist/internal/engine"
	"vlist/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	chromeLines     = 3 // header, filter/status line, key help
	wheelStep       = 3
	statusTTL       = 4 * time.Second
	defaultDebounce = 300 * time.Millisecond
	filterCharLimit = 16
	minVisibleRows  = 1
)

type filterAppliedMsg struct {
	seq  int
	text string
}

type statusClearMsg struct{ seq int }

// grab is a row picked up with the move key. from is its position when grabbed.
type grab struct {
	id   model.Identity
	from model.Position
}

type appModel struct {
	eng  *engine.Engine
	log  *slog.Logger
	keys keyMap
	help help.Model

	glyphs   glyphSet
	debounce time.Duration

	width  int
	height int

	// cursor is a display position: a manual position without a filter, a match rank with one.
	cursor model.Position
	grab   *grab

	filter    textinput.Model
	filterSeq int

	showHelp bool

	status    string
	statusErr bool
	statusSeq int
}

func newAppModel(eng *engine.Engine, opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	debounce := opts.FilterDebounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "digits"
	ti.CharLimit = filterCharLimit
	ti.SetValue(eng.FilterText())

	m := appModel{
		eng:      eng,
		log:      log,
		keys:     defaultKeyMap(),
		help:     help.New(),
		glyphs:   glyphPreference(),
		debounce: debounce,
		filter:   ti,
	}
	m.cursor = m.firstVisible()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case filterAppliedMsg:
		// Debounce: only the latest edit is applied.
		if msg.seq != m.filterSeq {
			return m, nil
		}
		m.applyFilter(msg.text)
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollRows(-wheelStep)
		case tea.MouseButtonWheelDown:
			m.scrollRows(wheelStep)
		}
		return m, nil

	case tea.KeyMsg:
		if m.filter.Focused() {
			return m.updateFilterInput(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.grab != nil {
		switch {
		case key.Matches(msg, m.keys.Drop):
			return m.drop()
		case key.Matches(msg, m.keys.Cancel):
			m.grab = nil
			return m, m.setStatus("Move cancelled", false)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-m.cursor)
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.eng.Count())
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle()
	case key.Matches(msg, m.keys.Grab):
		return m, m.startGrab()
	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveNeighbour(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveNeighbour(1)
	case key.Matches(msg, m.keys.ClearInput):
		m.filterSeq++
		m.filter.SetValue("")
		m.applyFilter("")
	case key.Matches(msg, m.keys.Filter):
		if m.grab != nil {
			return m, m.setStatus("Drop or cancel the move first", true)
		}
		return m, m.filter.Focus()
	}
	return m, nil
}

func (m appModel) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filter.Blur()
		// Leaving the input applies the text right away.
		m.filterSeq++
		m.applyFilter(m.filter.Value())
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() == before {
		return m, cmd
	}
	m.filterSeq++
	seq, text := m.filterSeq, m.filter.Value()
	return m, tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return filterAppliedMsg{seq: seq, text: text}
	}))
}

func (m *appModel) applyFilter(text string) {
	if text == m.eng.FilterText() {
		return
	}
	m.eng.SetFilter(text)
	m.cursor = m.firstVisible()
	m.clampCursor()
	m.log.Debug("filter applied", "text", text, "count", m.eng.Count())
}

func (m *appModel) toggle() tea.Cmd {
	row, ok := m.eng.RowAt(m.cursor)
	if !ok {
		return nil
	}
	on, err := m.eng.Toggle(row.Identity)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.log.Debug("toggled", "id", row.Identity, "checked", on)
	return nil
}

func (m *appModel) startGrab() tea.Cmd {
	if m.eng.FilterText() != "" {
		return m.setStatus("Moving rows is disabled while a filter is active", true)
	}
	row, ok := m.eng.RowAt(m.cursor)
	if !ok {
		return nil
	}
	m.grab = &grab{id: row.Identity, from: row.Position}
	return m.setStatus(fmt.Sprintf("Moving %s: pick a target, enter to drop, esc to cancel", row.Label), false)
}

func (m appModel) drop() (tea.Model, tea.Cmd) {
	g := m.grab
	m.grab = nil
	target, ok := m.eng.RowAt(m.cursor)
	if !ok || target.Identity == g.id {
		// Dropped where it started: nothing to emit.
		return m, nil
	}
	return m, m.reorder(model.ReorderIntent{Moved: g.id, Target: target.Identity})
}

func (m *appModel) moveNeighbour(delta int) tea.Cmd {
	if m.eng.FilterText() != "" {
		return m.setStatus("Moving rows is disabled while a filter is active", true)
	}
	row, ok := m.eng.RowAt(m.cursor)
	if !ok {
		return nil
	}
	next, ok := m.eng.RowAt(m.cursor + delta)
	if !ok {
		return nil
	}
	return m.reorder(model.ReorderIntent{Moved: row.Identity, Target: next.Identity})
}

func (m *appModel) reorder(intent model.ReorderIntent) tea.Cmd {
	if err := m.eng.Reorder(intent); err != nil {
		var nv *engine.NotVisibleError
		if errors.As(err, &nv) {
			return m.setStatus(fmt.Sprintf("Row %s scrolled out of view; move cancelled", m.eng.Label(nv.Identity)), true)
		}
		return m.setStatus(err.Error(), true)
	}
	// Follow the moved row.
	m.cursor = m.eng.Index().PositionOf(intent.Moved)
	m.ensureCursorVisible()
	return nil
}

func (m *appModel) setStatus(s string, isErr bool) tea.Cmd {
	m.status = s
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

func (m *appModel) listHeight() int {
	return max(minVisibleRows, m.height-chromeLines)
}

func (m *appModel) rowHeight() int {
	return max(1, m.eng.Viewport().RowHeight)
}

func (m *appModel) firstVisible() model.Position {
	return m.eng.Viewport().ScrollOffset / m.rowHeight()
}

func (m *appModel) resize() {
	v := m.eng.Viewport()
	v.ViewportHeight = m.listHeight() * m.rowHeight()
	m.eng.SetViewport(v)
	m.ensureCursorVisible()
}

func (m *appModel) moveCursor(delta int) {
	m.cursor += delta
	m.ensureCursorVisible()
}

func (m *appModel) clampCursor() {
	m.cursor = max(0, min(m.cursor, m.eng.Count()-1))
}

// ensureCursorVisible clamps the cursor and scrolls the minimum amount that keeps it on screen.
func (m *appModel) ensureCursorVisible() {
	m.clampCursor()
	first := m.firstVisible()
	h := m.listHeight()
	switch {
	case m.cursor < first:
		m.eng.ScrollTo(m.cursor * m.rowHeight())
	case m.cursor >= first+h:
		m.eng.ScrollTo((m.cursor - h + 1) * m.rowHeight())
	}
}

// scrollRows scrolls the viewport and drags the cursor along when it would leave the screen.
func (m *appModel) scrollRows(delta int) {
	m.eng.ScrollBy(delta)
	first := m.firstVisible()
	h := m.listHeight()
	if m.cursor < first {
		m.cursor = first
	}
	if m.cursor >= first+h {
		m.cursor = first + h - 1
	}
	m.clampCursor()
}
