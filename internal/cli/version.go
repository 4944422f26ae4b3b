package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set with -ldflags "-X vlist/internal/cli.version=..." at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the vlist version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			_, err := fmt.Fprint(cmd.OutOrStdout(), resp)
			return err
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (yaml|json)")

	return cmd
}
