package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"vlist/internal/config"
	"vlist/internal/format"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type App struct {
	v   *viper.Viper
	cfg config.Config
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{v: config.New()}

	cmd := &cobra.Command{
		Use:          "vlist",
		Short:        "A million-row list you can scroll, reorder, check and filter",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  vlist

  # Scriptable commands
  vlist rows --offset 500000 --height 20
  vlist move 7 --after 2
  vlist count 42

  # Direct lookup (shortcut for: vlist locate 42)
  vlist 42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive list.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	bindErr := config.BindFlags(app.v, cmd.PersistentFlags())

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if bindErr != nil {
			return writeErr(cmd, bindErr)
		}
		cfg, err := config.Load(app.v)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		app.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		return nil
	}

	cmd.AddCommand(newRowsCmd(app))
	cmd.AddCommand(newCountCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newLocateCmd(app))
	cmd.AddCommand(newAtCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newSelectedCmd(app))
	cmd.AddCommand(newScrollCmd(app))
	cmd.AddCommand(newFilterCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newCompactCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// writeOut wraps v in a {"data": ...} envelope for json and edn. Tables print v itself.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.cfg.Format == format.Table {
		return format.Write(cmd.OutOrStdout(), v, app.cfg.Format, app.cfg.Pretty)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.cfg.Format, app.cfg.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
