package main

import (
	"os"
	"strings"

	"vlist/internal/cli"
)

func isIdentity(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Persistent flags that take a value; the token after them is not a positional.
var valueFlags = map[string]bool{
	"--dir":             true,
	"--config":          true,
	"--backend":         true,
	"--size":            true,
	"--row-height":      true,
	"--viewport-height": true,
	"--overscan":        true,
	"--filter-debounce": true,
	"--write-interval":  true,
	"--log-level":       true,
	"--format":          true,
}

// rewriteDirectLookupArgs turns `vlist <id>` into `vlist locate <id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (`vlist --dir x 42`), so the first positional is searched for
// rather than assuming argv[1].
func rewriteDirectLookupArgs(argv []string) []string {
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			// Everything after is positional for the root command.
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isIdentity(a):
			return splice(argv, i)
		default:
			return argv
		}
	}
	return argv
}

func splice(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[:at]...)
	out = append(out, "locate")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
