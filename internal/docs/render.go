package docs

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	renderersMu sync.Mutex
	// Keyed by style and wrap width. A fixed style avoids glamour's auto style, which queries the
	// terminal and can block.
	renderers = map[string]*glamour.TermRenderer{}
)

// Render renders md for a terminal of the given width. On any rendering error the raw markdown
// is returned.
func Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 20)
	style := Style()
	key := style + ":" + strconv.Itoa(width)

	renderersMu.Lock()
	defer renderersMu.Unlock()
	r := renderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStyles(styleConfig(style)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		renderers[key] = r
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// Style picks "light" or "dark" from VLIST_MD_STYLE, then COLORFGBG, then lipgloss background
// detection.
func Style() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("VLIST_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is "fg;bg"; xterm colors 7-15 are light.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func styleConfig(style string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if style == "light" {
		cfg = styles.LightStyleConfig
	}
	zero := uint(0)
	cfg.Document.Margin = &zero
	faint := false
	cfg.BlockQuote.Faint = &faint
	return cfg
}
