package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Tabular values control their own table layout.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

var headerColor = color.New(color.Bold, color.FgCyan)

// WriteTable writes v as an aligned text table. The header line is colored when the output
// supports it (see color.NoColor).
func WriteTable(w io.Writer, v any) error {
	var header []string
	var rows [][]string
	if t, ok := v.(Tabular); ok {
		header, rows = t.TableHeader(), t.TableRows()
	} else {
		x, err := toGeneric(v)
		if err != nil {
			return err
		}
		header, rows = genericRows(x)
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 80
	tbl.Separator = "  "
	if len(header) > 0 {
		tbl.AddRow(cells(header)...)
	}
	for _, r := range rows {
		tbl.AddRow(cells(r)...)
	}
	if len(header) == 0 && len(rows) == 0 {
		return nil
	}

	out := tbl.String()
	if len(header) > 0 {
		first, rest, _ := strings.Cut(out, "\n")
		out = headerColor.Sprint(first)
		if rest != "" {
			out += "\n" + rest
		}
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func cells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func genericRows(x any) ([]string, [][]string) {
	switch t := x.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([][]string, len(keys))
		for i, k := range keys {
			rows[i] = []string{k, scalar(t[k])}
		}
		return []string{"KEY", "VALUE"}, rows
	case []any:
		rows := make([][]string, len(t))
		for i, it := range t {
			rows[i] = []string{scalar(it)}
		}
		return []string{"VALUE"}, rows
	default:
		return nil, [][]string{{scalar(x)}}
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
