package cli

import (
	"fmt"
	"strconv"

	"vlist/internal/store"
	"vlist/internal/window"

	"github.com/spf13/cobra"
)

func newScrollCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scroll <offset>",
		Short: "Set the persisted scroll offset (clamped to the scrollable height)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			off, err := strconv.Atoi(args[0])
			if err != nil || off < 0 {
				return writeErr(cmd, fmt.Errorf("invalid scroll offset %q", args[0]))
			}
			return withSession(cmd.Context(), app, func(s *session) error {
				s.eng.ScrollTo(off)
				vp := s.eng.Viewport()
				return writeOut(cmd, app, map[string]any{
					"scrollOffset":    vp.ScrollOffset,
					"maxScrollOffset": window.MaxScrollOffset(vp.ViewportHeight, vp.RowHeight, s.eng.Count()),
					"range":           s.eng.Range(),
				})
			})
		},
	}
}

func newFilterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "filter [text]",
		Short: "Set the persisted filter (no argument clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return withSession(cmd.Context(), app, func(s *session) error {
				s.eng.SetFilter(text)
				return writeOut(cmd, app, map[string]any{
					"filter":       text,
					"count":        s.eng.Count(),
					"scrollOffset": s.eng.Viewport().ScrollOffset,
				})
			})
		},
	}
}

type stateOut struct {
	Dir          string          `json:"dir"`
	Backend      string          `json:"backend"`
	ConfigFile   string          `json:"configFile,omitempty"`
	Size         int             `json:"size"`
	Overrides    int             `json:"overrides"`
	Checked      int             `json:"checked"`
	ScrollOffset int             `json:"scrollOffset"`
	Filter       string          `json:"filter"`
	Count        int             `json:"count"`
	Discarded    []store.Discard `json:"discarded"`
}

func newStateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Summarize persisted state and anything discarded while loading it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, func(s *session) error {
				discarded := s.report.Discarded
				if discarded == nil {
					discarded = []store.Discard{}
				}
				return writeOut(cmd, app, stateOut{
					Dir:          app.cfg.Dir,
					Backend:      app.cfg.Backend,
					ConfigFile:   app.cfg.ConfigFile,
					Size:         s.eng.Size(),
					Overrides:    s.eng.Index().Len(),
					Checked:      s.eng.Selection().Len(),
					ScrollOffset: s.eng.Viewport().ScrollOffset,
					Filter:       s.eng.FilterText(),
					Count:        s.eng.Count(),
					Discarded:    discarded,
				})
			})
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all persisted state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kv, err := store.Open(ctx, app.cfg.Backend, app.cfg.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()
			if err := store.Reset(ctx, kv); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"cleared": store.AllKeys})
		},
	}
}
