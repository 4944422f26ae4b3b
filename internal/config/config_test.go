package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func load(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	v := New()
	fs := pflag.NewFlagSet("vlist", pflag.ContinueOnError)
	if err := BindFlags(v, fs); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := load(t, "--dir", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir != dir || cfg.Backend != "sqlite" || cfg.Size != DefaultSize || cfg.Overscan != DefaultOverscan {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FilterDebounce != 300*time.Millisecond || cfg.WriteInterval != 250*time.Millisecond {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if cfg.ConfigFile != "" {
		t.Fatalf("expected no config file; got %q", cfg.ConfigFile)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "size: 500\noverscan: 3\nbackend: diskv\nformat: edn\n"
	if err := os.WriteFile(filepath.Join(dir, ".vlist.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VLIST_OVERSCAN", "5")
	t.Setenv("VLIST_FILTER_DEBOUNCE", "1s")

	cfg, err := load(t, "--dir", dir, "--format", "table")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Size != 500 || cfg.Backend != "diskv" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Overscan != 5 || cfg.FilterDebounce != time.Second {
		t.Fatalf("env should override file: %+v", cfg)
	}
	if cfg.Format != "table" {
		t.Fatalf("flag should override file: %+v", cfg)
	}
	if filepath.Base(cfg.ConfigFile) != ".vlist.yaml" {
		t.Fatalf("expected config file to be reported; got %q", cfg.ConfigFile)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cases := [][]string{
		{"--backend", "etcd"},
		{"--format", "xml"},
		{"--size", "0"},
		{"--row-height", "0"},
		{"--overscan", "-1"},
		{"--log-level", "loud"},
		{"--config", filepath.Join(dir, "missing.yaml")},
	}
	for _, args := range cases {
		if _, err := load(t, append([]string{"--dir", dir}, args...)...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestViewport(t *testing.T) {
	cfg := Config{RowHeight: 2, ViewportHeight: 10, Overscan: 4}
	vp := cfg.Viewport()
	if vp.ViewportHeight != 20 || vp.RowHeight != 2 || vp.Overscan != 4 || vp.ScrollOffset != 0 {
		t.Fatalf("unexpected viewport %+v", vp)
	}
}
