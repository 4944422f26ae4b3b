package cli

import (
	"strconv"

	"vlist/internal/model"

	"github.com/spf13/cobra"
)

type selectedOut struct {
	Count      int              `json:"count"`
	Identities []model.Identity `json:"identities"`
}

func (s selectedOut) TableHeader() []string { return []string{"IDENTITY"} }

func (s selectedOut) TableRows() [][]string {
	out := make([][]string, len(s.Identities))
	for i, id := range s.Identities {
		out[i] = []string{strconv.Itoa(id)}
	}
	return out
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>...",
		Short: "Check or uncheck rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, func(s *session) error {
				ids := make([]model.Identity, len(args))
				for i, a := range args {
					id, err := parseIdentity(a, s.eng.Size())
					if err != nil {
						return writeErr(cmd, err)
					}
					ids[i] = id
				}
				out := make([]map[string]any, 0, len(ids))
				for _, id := range ids {
					on, err := s.eng.Toggle(id)
					if err != nil {
						return writeErr(cmd, err)
					}
					out = append(out, map[string]any{"identity": id, "checked": on})
				}
				return writeOut(cmd, app, out)
			})
		},
	}
}

func newSelectedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "selected",
		Short: "List checked rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, func(s *session) error {
				ids := s.eng.Selection().IDs()
				return writeOut(cmd, app, selectedOut{Count: len(ids), Identities: ids})
			})
		},
	}
}
