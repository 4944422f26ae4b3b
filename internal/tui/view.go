package tui

import (
	"fmt"
	"strings"

	"vlist/internal/docs"
	"vlist/internal/model"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	h := m.listHeight()

	var body string
	if m.showHelp {
		md, _ := docs.Get("keys")
		body = fitBlock(docs.Render(md, m.width-2), m.width, h)
	} else {
		body = m.renderList(h)
	}

	lines := []string{
		fitWidth(m.renderHeader(), m.width),
		body,
		fitWidth(m.renderStatusLine(), m.width),
		fitWidth(m.renderHelp(), m.width),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderHeader() string {
	count := m.eng.Count()
	var b strings.Builder
	b.WriteString(styleHeader.Render(" vlist "))
	if text := m.eng.FilterText(); text != "" {
		b.WriteString(styleMuted.Render(fmt.Sprintf(" %d of %d rows match %q", count, m.eng.Size(), text)))
	} else {
		b.WriteString(styleMuted.Render(fmt.Sprintf(" %d rows", count)))
	}
	if n := m.eng.Selection().Len(); n > 0 {
		b.WriteString(styleChecked.Render(fmt.Sprintf("  %d checked", n)))
	}
	if m.grab != nil {
		b.WriteString(styleAccent.Render(fmt.Sprintf("  moving %s", m.eng.Label(m.grab.id))))
	}
	return b.String()
}

func (m appModel) renderList(h int) string {
	listW := max(1, m.width-1)
	count := m.eng.Count()
	bar := m.scrollbar(h, count)
	first := m.firstVisible()

	lines := make([]string, h)
	for i := range h {
		p := first + i
		var line string
		switch row, ok := m.eng.RowAt(p); {
		case ok:
			line = m.renderRow(row, listW)
		case count == 0 && i == 0:
			line = styleNoResult.Render(fitWidth("  No results", listW))
		default:
			line = fitWidth("", listW)
		}
		lines[i] = line + bar[i]
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderRow(row model.Row, width int) string {
	mark := " "
	grabbed := m.grab != nil && m.grab.id == row.Identity
	if grabbed {
		mark = m.glyphs.grabbed
	}
	box := m.glyphs.unchecked
	if m.eng.IsSelected(row.Identity) {
		box = m.glyphs.checked
	}
	text := fitWidth(fmt.Sprintf("%s %s %s", mark, box, row.Label), width)

	switch {
	case grabbed:
		return styleGrabbed.Render(text)
	case row.Position == m.cursor:
		return styleCursor.Render(text)
	case m.eng.IsSelected(row.Identity):
		return styleChecked.Render(text)
	default:
		return styleRow.Render(text)
	}
}

// scrollbar returns one cell per list line. The thumb covers the visible share of the
// scrollable height.
func (m appModel) scrollbar(h, count int) []string {
	cells := make([]string, h)
	if count <= h {
		for i := range cells {
			cells[i] = " "
		}
		return cells
	}
	thumb := max(1, h*h/count)
	top := 0
	if span := count - h; span > 0 {
		top = min(h-thumb, m.firstVisible()*(h-thumb)/span)
	}
	for i := range cells {
		if i >= top && i < top+thumb {
			cells[i] = styleThumb.Render(m.glyphs.thumb)
		} else {
			cells[i] = styleTrack.Render(m.glyphs.track)
		}
	}
	return cells
}

func (m appModel) renderStatusLine() string {
	switch {
	case m.filter.Focused():
		return m.filter.View()
	case m.status != "" && m.statusErr:
		return styleError.Render(" " + m.status)
	case m.status != "":
		return styleAccent.Render(" " + m.status)
	case m.eng.FilterText() != "":
		return styleMuted.Render(" / " + m.eng.FilterText())
	}
	return ""
}

func (m appModel) renderHelp() string {
	if m.grab != nil {
		return m.help.View(grabKeyMap{m.keys})
	}
	return m.help.View(m.keys)
}
