package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Struct fields become kebab-case keywords (scrollOffset ->
// :scroll-offset); only maps, vectors, strings, numbers, booleans and nil are produced.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := toGeneric(v)
	if err != nil {
		return err
	}
	e := &ednWriter{pretty: pretty}
	e.value(x, 0)
	e.buf.WriteByte('\n')
	_, err = w.Write(e.buf.Bytes())
	return err
}

type ednWriter struct {
	buf    bytes.Buffer
	pretty bool
}

func (e *ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("nil")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case json.Number:
		e.buf.WriteString(t.String())
	case string:
		e.buf.WriteString(strconv.Quote(t))
	case []any:
		e.seq('[', ']', len(t), depth, func(i int) { e.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq('{', '}', len(keys), depth, func(i int) {
			e.buf.WriteString(keyword(keys[i]))
			e.buf.WriteByte(' ')
			e.value(t[keys[i]], depth+1)
		})
	default:
		e.buf.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// seq writes n elements between open and close. Pretty output puts each element on its own
// line; compact output separates them with a single space.
func (e *ednWriter) seq(open, close byte, n, depth int, elem func(int)) {
	e.buf.WriteByte(open)
	for i := 0; i < n; i++ {
		switch {
		case e.pretty:
			e.buf.WriteByte('\n')
			e.buf.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			e.buf.WriteByte(' ')
		}
		elem(i)
	}
	if e.pretty && n > 0 {
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", depth))
	}
	e.buf.WriteByte(close)
}

func keyword(s string) string {
	var b strings.Builder
	b.WriteByte(':')
	for i, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '_':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
