package engine

import "vlist/internal/model"

// Materialize resolves rng to concrete rows.
//
// Without a filter, rng is a window of positions in the manual order. With a filter, rng is a
// window of match ranks (manual order is ignored) and each row's Position is its rank. The
// result never repeats an identity and is ordered by ascending position.
func (e *Engine) Materialize(rng model.Range, filterText string) []model.Row {
	if rng.Empty() {
		return nil
	}
	if filterText == "" {
		start := max(0, rng.Start)
		end := min(e.n-1, rng.End)
		if end < start {
			return nil
		}
		ids := e.index.Order(start, end)
		rows := make([]model.Row, len(ids))
		for i, id := range ids {
			rows[i] = model.Row{Identity: id, Position: start + i, Label: e.label(id)}
		}
		return rows
	}

	// rng already carries overscan; MatchWindow pads again, so a filtered window may start
	// before rng.Start and stays within rng widened by overscan on each side.
	first, ids := e.filter.MatchWindow(filterText, rng.Start, rng.End, e.viewport.Overscan)
	rows := make([]model.Row, len(ids))
	for i, id := range ids {
		rows[i] = model.Row{Identity: id, Position: first + i, Label: e.label(id)}
	}
	return rows
}

// RowAt returns the materialized row at display position p, if it is in the current window.
func (e *Engine) RowAt(p model.Position) (model.Row, bool) {
	if len(e.rows) == 0 {
		return model.Row{}, false
	}
	i := p - e.rows[0].Position
	if i < 0 || i >= len(e.rows) {
		return model.Row{}, false
	}
	return e.rows[i], true
}

func (e *Engine) inWindow(id model.Identity) bool {
	for _, r := range e.rows {
		if r.Identity == id {
			return true
		}
	}
	return false
}
