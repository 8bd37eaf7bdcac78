package cmd

import (
	"fmt"
	"os"

	"github.com/jamesbehr/symlinker/config"
	"github.com/jamesbehr/symlinker/errors"
	"github.com/jamesbehr/symlinker/logging"
	"github.com/jamesbehr/symlinker/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	configFile string
	verbosity  int

	cfg      *config.Config
	printer  *ui.Printer
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "symlinker",
		Short: "Create symbolic links or modify their destinations",
		Long: `symlinker creates symbolic and hard links, lists the symbolic links
below a directory and rewrites the destinations of many links at once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closeLog()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/symlinker/config.toml)")
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(
		newLinkCmd(a),
		newSearchCmd(a),
		newFindCmd(a),
		newBrokenCmd(a),
		newBatchCmd(a),
		newHardlinkCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configFile
	explicit := cmd.Flags().Changed("config")
	if !explicit {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg

	verbosity := a.verbosity
	if !cmd.Flags().Changed("verbose") {
		verbosity = cfg.Verbosity
	}

	a.closeLog = logging.SetupLogger(verbosity, cfg.LogFile)
	log.Debug().Str("command", cmd.Name()).Str("config", path).Msg("Command started")

	a.printer = ui.NewPrinter(cmd.OutOrStdout(), a.color(cmd))
	return nil
}

func (a *app) color(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return a.cfg.Color == ui.ColorAlways
	}

	return ui.ColorEnabled(a.cfg.Color, f)
}

// Execute runs the command line. Failures of individual links are printed
// by the commands themselves; only usage and configuration problems end up
// here.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Message(err))
		os.Exit(1)
	}
}
