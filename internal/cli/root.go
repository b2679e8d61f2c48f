package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vtable/internal/config"
	"github.com/rshade/vtable/internal/logging"
)

const (
	// annotationTUI marks commands that may take over the terminal.
	annotationTUI = "vtable/tui"
	// annotationNoConfig marks commands that run on defaults without reading the config file.
	annotationNoConfig = "vtable/no-config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// state is shared by the root command and its subcommands for one execution.
type state struct {
	cfg    *config.Config
	logs   *logging.Result
	logger zerolog.Logger
}

// NewRootCmd creates the root Cobra command for the vtable CLI.
// It loads configuration, sets up logging and registers the view, range,
// generate and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	st := &state{cfg: config.Default(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "vtable",
		Short:         "Virtualized, sortable tables in the terminal",
		Long:          "vtable renders large tables by drawing only the rows that intersect the viewport.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationNoConfig] == "" {
				path, _ := cmd.Flags().GetString("config")
				cfg, err := config.Load(path)
				if err != nil {
					return err
				}
				st.cfg = cfg
			}
			setupLogging(cmd, st)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return st.logs.Close()
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default ~/.vtable/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newViewCmd(st), newRangeCmd(st), newGenerateCmd(st), newConfigCmd(st))

	return cmd
}

const rootCmdExample = `  # Browse a CSV file interactively
  vtable view people.csv

  # Browse 100,000 generated rows sorted by age, oldest first
  vtable view --generate 100000 --sort age:desc

  # Print the rendered window for a scroll position
  vtable range --rows 10000 --row-height 54 --viewport 800 --scroll 5400

  # Write sample data
  vtable generate 5000 --out people.json

  # Create the configuration file
  vtable config init`
