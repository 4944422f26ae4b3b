package model

// Identity names a logical row. It never changes, regardless of where the row is displayed.
type Identity = int

// Position is a display slot in [0, N).
type Position = int

// Override records that an identity sits somewhere other than its natural slot.
type Override struct {
	Identity Identity `json:"identity"`
	Position Position `json:"position"`
}

// Row is a materialized row record. Rows only exist for the current window.
type Row struct {
	Identity Identity `json:"identity"`
	Position Position `json:"position"`
	Label    string   `json:"label"`
}

// Range is an inclusive span of logical positions. An empty range has End < Start.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func EmptyRange() Range { return Range{Start: 0, End: -1} }

func (r Range) Empty() bool { return r.End < r.Start }

func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Range) Contains(p Position) bool {
	return !r.Empty() && p >= r.Start && p <= r.End
}

// Viewport is the geometry reported by the renderer on every scroll event.
//
// Units are arbitrary (pixels, terminal lines) as long as they agree with each other.
type Viewport struct {
	ScrollOffset   int `json:"scrollOffset"`
	ViewportHeight int `json:"viewportHeight"`
	RowHeight      int `json:"rowHeight"`
	Overscan       int `json:"overscan"`
}

// ReorderIntent is emitted by the drag collaborator when a drop lands on a different row.
type ReorderIntent struct {
	Moved  Identity `json:"moved"`
	Target Identity `json:"target"`
}
