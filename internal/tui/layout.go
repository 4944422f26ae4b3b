package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitWidth pads or truncates s (ANSI-aware) to exactly width columns.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	switch {
	case w > width && width == 1:
		return xansi.Truncate(s, 1, "")
	case w > width:
		return xansi.Truncate(s, width, "…")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// fitBlock forces s to exactly height lines of width columns each.
func fitBlock(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height >= 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitWidth(ln, width)
	}
	return strings.Join(lines, "\n")
}
