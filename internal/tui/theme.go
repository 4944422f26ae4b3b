package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The list must stay readable on light and dark terminals, so every color is adaptive.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSurfaceFg  = ac("235", "252")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorChecked    = ac("28", "78")
	colorGrabbedBg  = ac("221", "94")
	colorError      = ac("160", "203")
	colorTrack      = ac("252", "237")
	colorThumb      = ac("244", "246")
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleRow      = lipgloss.NewStyle().Foreground(colorSurfaceFg)
	styleCursor   = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	styleGrabbed  = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorGrabbedBg).Bold(true)
	styleChecked  = lipgloss.NewStyle().Foreground(colorChecked)
	styleAccent   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	styleTrack    = lipgloss.NewStyle().Foreground(colorTrack)
	styleThumb    = lipgloss.NewStyle().Foreground(colorThumb)
	styleNoResult = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// applyColorProfilePreference sets the Lip Gloss color profile for the interactive list.
//
// termenv.EnvColorProfile honors CLICOLOR, which can turn colors off inside a TUI; here only
// NO_COLOR disables them and TERM/COLORTERM may upgrade an under-reported profile.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(os.Getenv("TERM"))
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference overrides background detection from VLIST_TUI_THEME=light|dark or the
// COLORFGBG ("fg;bg") heuristic.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("VLIST_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
