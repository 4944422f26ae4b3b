package tui

import (
	"os"
	"strings"
)

// Some terminal fonts render box-drawing and check glyphs poorly; VLIST_TUI_GLYPHS=ascii
// switches to plain ASCII.

type glyphSet struct {
	checked   string
	unchecked string
	grabbed   string
	track     string
	thumb     string
}

var (
	unicodeGlyphs = glyphSet{checked: "☑", unchecked: "☐", grabbed: "≡", track: "│", thumb: "┃"}
	asciiGlyphs   = glyphSet{checked: "[x]", unchecked: "[ ]", grabbed: "=", track: "|", thumb: "#"}
)

func glyphPreference() glyphSet {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("VLIST_TUI_GLYPHS"))) {
	case "ascii":
		return asciiGlyphs
	default:
		return unicodeGlyphs
	}
}
