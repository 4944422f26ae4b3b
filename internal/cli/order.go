package cli

import (
	"errors"
	"fmt"
	"strconv"

	"vlist/internal/model"
	"vlist/internal/order"

	"github.com/spf13/cobra"
)

type placementOut struct {
	Identity  model.Identity `json:"identity"`
	Position  model.Position `json:"position"`
	Overrides int            `json:"overrides"`
}

func parseIdentity(s string, size int) (model.Identity, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid identity %q", s)
	}
	if id < 0 || id >= size {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", order.ErrOutOfRange, id, size)
	}
	return id, nil
}

func newMoveCmd(app *App) *cobra.Command {
	var before, after, to string

	cmd := &cobra.Command{
		Use:   "move <id> (--before <ref> | --after <ref> | --to <target>)",
		Short: "Move a row next to another row, or into another row's slot",
		Example: `  vlist move 7 --after 2   # 0 1 2 7 3 4 5 6 8 9
  vlist move 7 --to 3      # 7 takes 3's slot; 3..6 shift down`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flag, ref string
			given := 0
			for name, v := range map[string]string{"before": before, "after": after, "to": to} {
				if cmd.Flags().Changed(name) {
					given++
					flag, ref = name, v
				}
			}
			if given != 1 {
				return writeErr(cmd, errors.New("exactly one of --before, --after or --to is required"))
			}

			return withSession(cmd.Context(), app, func(s *session) error {
				size := s.eng.Size()
				id, err := parseIdentity(args[0], size)
				if err != nil {
					return writeErr(cmd, err)
				}
				other, err := parseIdentity(ref, size)
				if err != nil {
					return writeErr(cmd, err)
				}
				switch flag {
				case "to":
					err = s.eng.MoveTo(id, other)
				case "before":
					err = s.eng.Move(id, other, order.Before)
				default:
					err = s.eng.Move(id, other, order.After)
				}
				if err != nil {
					return writeErr(cmd, err)
				}
				idx := s.eng.Index()
				return writeOut(cmd, app, placementOut{Identity: id, Position: idx.PositionOf(id), Overrides: idx.Len()})
			})
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Place the row immediately before this identity")
	cmd.Flags().StringVar(&after, "after", "", "Place the row immediately after this identity")
	cmd.Flags().StringVar(&to, "to", "", "Move the row into this identity's slot")

	return cmd
}

func newLocateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <id>",
		Short: "Print the position of an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, func(s *session) error {
				id, err := parseIdentity(args[0], s.eng.Size())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"identity": id, "position": s.eng.Index().PositionOf(id)})
			})
		},
	}
}

func newAtCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "at <position>",
		Short: "Print the identity at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, func(s *session) error {
				p, err := strconv.Atoi(args[0])
				if err != nil || p < 0 || p >= s.eng.Size() {
					return writeErr(cmd, fmt.Errorf("%w: position %q not in [0, %d)", order.ErrOutOfRange, args[0], s.eng.Size()))
				}
				return writeOut(cmd, app, map[string]any{"position": p, "identity": s.eng.Index().IdentityAt(p)})
			})
		},
	}
}

func newCompactCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compact",
		Short: "Drop order overrides that match the default order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, func(s *session) error {
				dropped := s.eng.Compact()
				return writeOut(cmd, app, map[string]any{"dropped": dropped, "overrides": s.eng.Index().Len()})
			})
		},
	}
}
