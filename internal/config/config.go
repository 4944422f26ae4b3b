// Package config resolves vlist settings from flags, VLIST_* environment variables and an
// optional .vlist.yaml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"vlist/internal/model"
	"vlist/internal/store"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyDir            = "dir"
	KeyConfig         = "config"
	KeyBackend        = "backend"
	KeySize           = "size"
	KeyRowHeight      = "row-height"
	KeyViewportHeight = "viewport-height"
	KeyOverscan       = "overscan"
	KeyFilterDebounce = "filter-debounce"
	KeyWriteInterval  = "write-interval"
	KeyLogLevel       = "log-level"
	KeyFormat         = "format"
	KeyPretty         = "pretty"
)

const (
	DefaultDir            = "~/.vlist"
	DefaultSize           = 1_000_000
	DefaultRowHeight      = 1
	DefaultViewportHeight = 20
	DefaultOverscan       = 10
	DefaultFilterDebounce = 300 * time.Millisecond
	DefaultWriteInterval  = 250 * time.Millisecond
	DefaultLogLevel       = "warn"
	DefaultFormat         = "json"
)

type Config struct {
	Dir            string        `json:"dir"`
	ConfigFile     string        `json:"configFile,omitempty"`
	Backend        string        `json:"backend"`
	Size           int           `json:"size"`
	RowHeight      int           `json:"rowHeight"`
	ViewportHeight int           `json:"viewportHeight"`
	Overscan       int           `json:"overscan"`
	FilterDebounce time.Duration `json:"filterDebounce"`
	WriteInterval  time.Duration `json:"writeInterval"`
	LogLevel       string        `json:"logLevel"`
	Format         string        `json:"format"`
	Pretty         bool          `json:"pretty"`
}

// New returns a viper instance with defaults and environment binding in place.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDir, DefaultDir)
	v.SetDefault(KeyBackend, store.BackendSQLite)
	v.SetDefault(KeySize, DefaultSize)
	v.SetDefault(KeyRowHeight, DefaultRowHeight)
	v.SetDefault(KeyViewportHeight, DefaultViewportHeight)
	v.SetDefault(KeyOverscan, DefaultOverscan)
	v.SetDefault(KeyFilterDebounce, DefaultFilterDebounce)
	v.SetDefault(KeyWriteInterval, DefaultWriteInterval)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyPretty, false)

	v.SetEnvPrefix("VLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the persistent flags on fs and binds each one to its viper key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String(KeyDir, DefaultDir, "Data directory (state database, log file, optional .vlist.yaml)")
	fs.String(KeyConfig, "", "Config file (default: ./.vlist.yaml, then <dir>/.vlist.yaml)")
	fs.String(KeyBackend, store.BackendSQLite, "Persistence backend (sqlite|diskv|memory)")
	fs.Int(KeySize, DefaultSize, "Number of rows")
	fs.Int(KeyRowHeight, DefaultRowHeight, "Row height in lines")
	fs.Int(KeyViewportHeight, DefaultViewportHeight, "Viewport height in lines for scriptable commands")
	fs.Int(KeyOverscan, DefaultOverscan, "Rows materialized beyond each edge of the viewport")
	fs.Duration(KeyFilterDebounce, DefaultFilterDebounce, "Delay before filter input is applied")
	fs.Duration(KeyWriteInterval, DefaultWriteInterval, "Minimum interval between persistence flushes")
	fs.String(KeyLogLevel, DefaultLogLevel, "Log level (debug|info|warn|error)")
	fs.String(KeyFormat, DefaultFormat, "Output format (json|edn|table)")
	fs.Bool(KeyPretty, false, "Pretty-print JSON output")

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// Load reads the config file (if any) and returns the resolved settings.
func Load(v *viper.Viper) (Config, error) {
	dir, err := homedir.Expand(v.GetString(KeyDir))
	if err != nil {
		return Config{}, fmt.Errorf("resolve dir: %w", err)
	}

	if file := v.GetString(KeyConfig); file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return Config{}, fmt.Errorf("resolve config: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".vlist") // .yaml is implicit
		v.AddConfigPath(".")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	// The file may itself move the data dir.
	dir, err = homedir.Expand(v.GetString(KeyDir))
	if err != nil {
		return Config{}, fmt.Errorf("resolve dir: %w", err)
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return Config{}, fmt.Errorf("resolve dir: %w", err)
	}

	cfg := Config{
		Dir:            dir,
		ConfigFile:     v.ConfigFileUsed(),
		Backend:        strings.ToLower(v.GetString(KeyBackend)),
		Size:           v.GetInt(KeySize),
		RowHeight:      v.GetInt(KeyRowHeight),
		ViewportHeight: v.GetInt(KeyViewportHeight),
		Overscan:       v.GetInt(KeyOverscan),
		FilterDebounce: v.GetDuration(KeyFilterDebounce),
		WriteInterval:  v.GetDuration(KeyWriteInterval),
		LogLevel:       strings.ToLower(v.GetString(KeyLogLevel)),
		Format:         strings.ToLower(v.GetString(KeyFormat)),
		Pretty:         v.GetBool(KeyPretty),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case store.BackendSQLite, store.BackendDiskv, store.BackendMemory:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	switch c.Format {
	case "json", "edn", "table":
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive (got %d)", c.Size)
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("row-height must be positive (got %d)", c.RowHeight)
	}
	if c.ViewportHeight < 0 {
		return fmt.Errorf("viewport-height must not be negative (got %d)", c.ViewportHeight)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("overscan must not be negative (got %d)", c.Overscan)
	}
	if c.FilterDebounce < 0 || c.WriteInterval < 0 {
		return errors.New("durations must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Viewport is the initial geometry for scriptable commands.
func (c Config) Viewport() model.Viewport {
	return model.Viewport{
		ViewportHeight: c.ViewportHeight * c.RowHeight,
		RowHeight:      c.RowHeight,
		Overscan:       c.Overscan,
	}
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log-level: %s", s)
	}
	return l, nil
}
