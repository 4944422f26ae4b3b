package cli

import (
	"fmt"
	"strconv"

	"vlist/internal/filter"
	"vlist/internal/model"
	"vlist/internal/window"

	"github.com/spf13/cobra"
)

type rowOut struct {
	Position model.Position `json:"position"`
	Identity model.Identity `json:"identity"`
	Label    string         `json:"label"`
	Checked  bool           `json:"checked"`
}

type rowsOut struct {
	Filter       string      `json:"filter"`
	Count        int         `json:"count"`
	ScrollOffset int         `json:"scrollOffset"`
	Range        model.Range `json:"range"`
	Rows         []rowOut    `json:"rows"`
}

func (r rowsOut) TableHeader() []string { return []string{"POSITION", "IDENTITY", "CHECKED", "LABEL"} }

func (r rowsOut) TableRows() [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		check := ""
		if row.Checked {
			check = "x"
		}
		out[i] = []string{strconv.Itoa(row.Position), strconv.Itoa(row.Identity), check, row.Label}
	}
	return out
}

func newRowsCmd(app *App) *cobra.Command {
	var offset, height int
	var filterText string

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the rows materialized for a viewport",
		Long: `Print the rows materialized for a viewport.

Offset, height and filter default to the persisted scroll offset, the configured viewport height
and the persisted filter. Nothing is written back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, func(s *session) error {
				eng := s.eng
				vp := eng.Viewport()
				if cmd.Flags().Changed("height") {
					if height < 0 {
						return writeErr(cmd, fmt.Errorf("height must not be negative"))
					}
					vp.ViewportHeight = height * vp.RowHeight
				}
				if cmd.Flags().Changed("offset") {
					if offset < 0 {
						return writeErr(cmd, fmt.Errorf("offset must not be negative"))
					}
					vp.ScrollOffset = offset
				}
				if !cmd.Flags().Changed("filter") {
					filterText = eng.FilterText()
				}

				count := eng.Filter().Count(filterText)
				vp.ScrollOffset = window.ClampScroll(vp.ScrollOffset, vp.ViewportHeight, vp.RowHeight, count)
				rng := window.ForViewport(vp, count)
				rows := eng.Materialize(rng, filterText)

				out := rowsOut{
					Filter:       filterText,
					Count:        count,
					ScrollOffset: vp.ScrollOffset,
					Range:        rng,
					Rows:         make([]rowOut, len(rows)),
				}
				for i, r := range rows {
					out.Rows[i] = rowOut{Position: r.Position, Identity: r.Identity, Label: r.Label, Checked: eng.IsSelected(r.Identity)}
				}
				return writeOut(cmd, app, out)
			})
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Scroll offset (default: persisted)")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height in rows (default: --viewport-height)")
	cmd.Flags().StringVar(&filterText, "filter", "", "Filter text (default: persisted)")

	return cmd
}

func newCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count <text>",
		Short: "Count rows whose identity contains text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Counting needs no persisted state.
			n, err := filter.New(app.cfg.Size).CountContext(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"filter": args[0], "count": n})
		},
	}
}
