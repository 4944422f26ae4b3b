package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"vlist/internal/store"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// mustData runs vlist against dir with a 100-row domain and returns the "data" payload.
func mustData(t *testing.T, dir string, args ...string) any {
	t.Helper()
	full := append([]string{"--dir", dir, "--size", "100", "--overscan", "0"}, args...)
	stdout, stderr, err := runCLI(t, full)
	if err != nil {
		t.Fatalf("vlist %v failed: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"]
	if !ok {
		t.Fatalf("expected data envelope; got %s", stdout)
	}
	return data
}

func mustMap(t *testing.T, dir string, args ...string) map[string]any {
	t.Helper()
	m, ok := mustData(t, dir, args...).(map[string]any)
	if !ok {
		t.Fatalf("expected object payload for %v", args)
	}
	return m
}

func num(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func TestMoveLocateAt(t *testing.T) {
	dir := t.TempDir()

	moved := mustMap(t, dir, "move", "7", "--after", "2")
	if num(moved["position"]) != 3 {
		t.Fatalf("expected 7 at position 3; got %v", moved)
	}

	// State survives into a new process.
	if got := mustMap(t, dir, "locate", "3"); num(got["position"]) != 4 {
		t.Fatalf("expected 3 at position 4; got %v", got)
	}
	if got := mustMap(t, dir, "at", "3"); num(got["identity"]) != 7 {
		t.Fatalf("expected identity 7 at position 3; got %v", got)
	}

	mustMap(t, dir, "move", "7", "--to", "6")
	if got := mustMap(t, dir, "at", "6"); num(got["identity"]) != 7 {
		t.Fatalf("expected identity 7 at position 6; got %v", got)
	}
	mustMap(t, dir, "move", "7", "--before", "8")
	if got := mustMap(t, dir, "locate", "7"); num(got["position"]) != 7 {
		t.Fatalf("expected 7 back at position 7; got %v", got)
	}

	if got := mustMap(t, dir, "compact"); num(got["overrides"]) != 0 || num(got["dropped"]) == 0 {
		t.Fatalf("expected compaction to empty the table; got %v", got)
	}
}

func TestMove_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := [][]string{
		{"move", "7"},
		{"move", "7", "--after", "2", "--before", "3"},
		{"move", "7", "--after", "7"},
		{"move", "7", "--after", "100"},
		{"move", "x", "--after", "1"},
		{"at", "100"},
		{"locate", "-1"},
	}
	for _, args := range cases {
		_, stderr, err := runCLI(t, append([]string{"--dir", dir, "--size", "100"}, args...))
		if err == nil {
			t.Fatalf("expected error for %v", args)
		}
		if len(stderr) == 0 {
			t.Fatalf("expected stderr for %v", args)
		}
	}
	if got := mustMap(t, dir, "state"); num(got["overrides"]) != 0 {
		t.Fatalf("failed moves must not change state; got %v", got)
	}
}

func TestToggleAndSelected(t *testing.T) {
	dir := t.TempDir()

	toggled, _ := mustData(t, dir, "toggle", "42").([]any)
	if len(toggled) != 1 || toggled[0].(map[string]any)["checked"] != true {
		t.Fatalf("unexpected toggle output %v", toggled)
	}
	sel := mustMap(t, dir, "selected")
	if num(sel["count"]) != 1 || num(sel["identities"].([]any)[0]) != 42 {
		t.Fatalf("unexpected selection %v", sel)
	}

	mustData(t, dir, "toggle", "42")
	if sel := mustMap(t, dir, "selected"); num(sel["count"]) != 0 {
		t.Fatalf("expected empty selection; got %v", sel)
	}

	kv, err := store.OpenSQLite(context.Background(), dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer kv.Close()
	if v, _, _ := kv.Get(context.Background(), store.KeyChecked); v != "[]" {
		t.Fatalf("expected persisted empty selection; got %q", v)
	}
}

func TestRows(t *testing.T) {
	dir := t.TempDir()
	mustMap(t, dir, "move", "7", "--after", "2")

	out := mustMap(t, dir, "rows", "--offset", "0", "--height", "5")
	rows := out["rows"].([]any)
	var ids []int
	for _, r := range rows {
		ids = append(ids, num(r.(map[string]any)["identity"]))
	}
	want := []int{0, 1, 2, 7, 3, 4}
	if len(ids) != len(want) {
		t.Fatalf("want %v; got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("want %v; got %v", want, ids)
		}
	}

	// Offsets past the end are clamped.
	out = mustMap(t, dir, "rows", "--offset", "5000", "--height", "5")
	if num(out["scrollOffset"]) != 95 {
		t.Fatalf("expected clamped offset 95; got %v", out["scrollOffset"])
	}
}

func TestFilterCountAndScroll(t *testing.T) {
	dir := t.TempDir()

	if got := mustMap(t, dir, "count", "5"); num(got["count"]) != 19 {
		t.Fatalf("expected 19 matches; got %v", got)
	}
	if got := mustMap(t, dir, "count", "abc"); num(got["count"]) != 0 {
		t.Fatalf("expected no matches for non-digits; got %v", got)
	}

	if got := mustMap(t, dir, "filter", "5"); num(got["count"]) != 19 {
		t.Fatalf("unexpected filter output %v", got)
	}
	// rows picks up the persisted filter.
	out := mustMap(t, dir, "rows", "--height", "3")
	first := out["rows"].([]any)[0].(map[string]any)
	if out["filter"] != "5" || num(first["identity"]) != 5 || num(first["position"]) != 0 {
		t.Fatalf("unexpected filtered rows %v", out)
	}
	mustMap(t, dir, "filter")
	if got := mustMap(t, dir, "state"); got["filter"] != "" || num(got["count"]) != 100 {
		t.Fatalf("expected filter cleared; got %v", got)
	}

	got := mustMap(t, dir, "--viewport-height", "20", "scroll", "1000")
	if num(got["scrollOffset"]) != 80 || num(got["maxScrollOffset"]) != 80 {
		t.Fatalf("expected scroll clamped to 80; got %v", got)
	}
	if st := mustMap(t, dir, "state"); num(st["scrollOffset"]) != 80 {
		t.Fatalf("expected persisted scroll 80; got %v", st)
	}
}

func TestState_ReportsDiscardedValues(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	kv, err := store.OpenSQLite(ctx, dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	_ = kv.Set(ctx, store.KeySortOrder, "[[7,3]]")
	_ = kv.Set(ctx, store.KeyScrollTop, "-5")
	_ = kv.Close()

	st := mustMap(t, dir, "state")
	discarded := st["discarded"].([]any)
	if len(discarded) != 2 || num(st["overrides"]) != 0 || num(st["scrollOffset"]) != 0 {
		t.Fatalf("expected both values discarded; got %v", st)
	}
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	mustMap(t, dir, "move", "1", "--to", "0")
	mustData(t, dir, "toggle", "3")
	mustMap(t, dir, "reset")

	st := mustMap(t, dir, "state")
	if num(st["overrides"]) != 0 || num(st["checked"]) != 0 {
		t.Fatalf("expected empty state after reset; got %v", st)
	}
}

func TestBackends(t *testing.T) {
	for _, backend := range []string{"diskv", "memory"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			mustMap(t, dir, "--backend", backend, "move", "7", "--after", "2")
			got := mustMap(t, dir, "--backend", backend, "locate", "7")
			want := 3
			if backend == "memory" {
				want = 7
			}
			if num(got["position"]) != want {
				t.Fatalf("expected position %d; got %v", want, got)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--size", "100", "--format", "edn", "locate", "5"})
	if err != nil {
		t.Fatalf("edn: %v", err)
	}
	if got := strings.TrimSpace(string(stdout)); got != "{:data {:identity 5 :position 5}}" {
		t.Fatalf("unexpected edn output %q", got)
	}

	stdout, _, err = runCLI(t, []string{"--dir", dir, "--size", "100", "--format", "table", "--overscan", "0", "rows", "--height", "2"})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(stdout)), "\n")
	if len(lines) != 4 || !strings.Contains(lines[0], "POSITION") {
		t.Fatalf("unexpected table output:\n%s", stdout)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "--format", "xml", "state"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VLIST_SIZE", "10")
	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "state"})
	if err != nil {
		t.Fatalf("state: %v\n%s", err, stderr)
	}
	if !strings.Contains(string(stdout), `"size":10`) {
		t.Fatalf("expected size from env; got %s", stdout)
	}
}

func TestDocs(t *testing.T) {
	dir := t.TempDir()
	topics := mustMap(t, dir, "docs")["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}
	stdout, _, err := runCLI(t, []string{"--dir", dir, "docs", "ordering", "--raw"})
	if err != nil || !strings.HasPrefix(string(stdout), "# Ordering") {
		t.Fatalf("unexpected raw docs: err=%v\n%s", err, stdout)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "docs", "nope"}); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"--dir", t.TempDir(), "version"})
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(string(stdout), "dev") {
		t.Fatalf("expected dev version; got %s", stdout)
	}
}
