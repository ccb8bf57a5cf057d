package cmd

import (
	"fmt"
	"os"

	"github.com/nfrund/hallrush/internal/app"
	"github.com/nfrund/hallrush/internal/config"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// environment is what every subcommand works against. It is resolved in the
// root command's pre-run hook.
type environment struct {
	fs       afero.Fs
	dataDir  string
	cfg      *config.Config
	injector *do.RootScope
}

// offline marks commands that do not touch the data directory.
var offline = map[string]string{"offline": "true"}

func (env *environment) setup() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if env.dataDir != "" {
		cfg.DataDir = env.dataDir
	}
	env.cfg = cfg
	env.injector = app.NewInjector(cfg, env.fs)
	return nil
}

func (env *environment) teardown() {
	if env.injector != nil {
		env.injector.Shutdown()
	}
}

// NewRootCmd builds the command tree on fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	env := &environment{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "hallrush-cli",
		Short: "Hall Rush operator tool",
		Long: `hallrush-cli inspects and maintains the data directory of a Hall Rush server.

Available commands:
  init           Write the default tile table and card deck
  check-config   Validate the tile table and card deck
  state          Show the saved game
  log            Print the event log
  reset          Reset the board for the current players
  topics         List the events published on the bus

Use "hallrush-cli [command] --help" for more information about a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["offline"] != "" {
				return nil
			}
			return env.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.teardown()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&env.dataDir, "data-dir", "d", "", "Data directory (defaults to DATA_DIR)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(env),
		newCheckConfigCmd(env),
		newStateCmd(env),
		newLogCmd(env),
		newResetCmd(env),
		newTopicsCmd(),
	)
	return rootCmd
}

// Execute runs the CLI against the real filesystem.
func Execute() {
	if err := NewRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
