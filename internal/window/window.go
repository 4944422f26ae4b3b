// Package window maps a scroll offset and viewport geometry to the span of logical positions
// that should be materialized.
package window

import "vlist/internal/model"

// ComputeRange returns the positions to materialize for the given geometry.
//
//	start = max(0, floor(scrollOffset/rowHeight) - overscan)
//	end   = min(domainSize-1, start + ceil(viewportHeight/rowHeight) + 2*overscan)
//
// Inputs are clamped, never rejected: negative values count as 0, a non-positive row height
// counts as 1 and the scroll offset is clamped to MaxScrollOffset before the formula runs, so an
// offset past the end yields the last full window rather than the degenerate range the bare
// formula would give. An empty domain yields an empty range.
func ComputeRange(scrollOffset, viewportHeight, rowHeight, overscan, domainSize int) model.Range {
	if domainSize <= 0 {
		return model.EmptyRange()
	}
	if rowHeight <= 0 {
		rowHeight = 1
	}
	viewportHeight = max(0, viewportHeight)
	overscan = max(0, overscan)
	scrollOffset = ClampScroll(scrollOffset, viewportHeight, rowHeight, domainSize)

	start := max(0, scrollOffset/rowHeight-overscan)
	visible := ceilDiv(viewportHeight, rowHeight)
	end := min(domainSize-1, start+visible+2*overscan)
	if start > end {
		start = end
	}
	return model.Range{Start: start, End: end}
}

// ForViewport is ComputeRange with the geometry taken from v.
func ForViewport(v model.Viewport, domainSize int) model.Range {
	return ComputeRange(v.ScrollOffset, v.ViewportHeight, v.RowHeight, v.Overscan, domainSize)
}

// ScrollHeight is the total scrollable height for domainSize rows.
func ScrollHeight(rowHeight, domainSize int) int {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return max(0, domainSize) * rowHeight
}

// MaxScrollOffset is the largest offset that still fills the viewport (0 when everything fits).
func MaxScrollOffset(viewportHeight, rowHeight, domainSize int) int {
	return max(0, ScrollHeight(rowHeight, domainSize)-max(0, viewportHeight))
}

// ClampScroll keeps offset within [0, MaxScrollOffset].
func ClampScroll(offset, viewportHeight, rowHeight, domainSize int) int {
	if offset < 0 {
		return 0
	}
	return min(offset, MaxScrollOffset(viewportHeight, rowHeight, domainSize))
}

// OffsetFor returns the scroll offset that puts position p at the top of the viewport.
func OffsetFor(p model.Position, rowHeight int) int {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return max(0, p) * rowHeight
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
