package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/vtable/internal/config"
)

// newConfigCmd groups the configuration subcommands.
func newConfigCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the vtable configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigValidateCmd(st))
	return cmd
}

// newConfigInitCmd creates the config init command for writing default configuration.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates ~/.vtable/config.yaml (or $VTABLE_HOME/config.yaml) with default values.
The --config flag selects another location.`,
		Example: `  # Create the configuration file
  vtable config init

  # Overwrite an existing file
  vtable config init --force`,
		Annotations: map[string]string{annotationNoConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			if err := config.Default().Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// newConfigValidateCmd reports whether the effective configuration is valid.
// Loading already validates, so reaching RunE means the file passed.
func newConfigValidateCmd(st *state) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Example: `  vtable config validate
  vtable config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("Configuration is valid")
			for _, field := range st.cfg.ZeroedDefaults() {
				cmd.PrintErrf("Warning: %s is 0; a table section replaces every default it omits\n", field)
			}
			if verbose {
				printConfigDetails(cmd, st.cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the effective configuration")

	return cmd
}

func printConfigDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Schema version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  Overscan: %d\n", cfg.Table.Overscan)
	cmd.Printf("  Row height: %g\n", cfg.Table.RowHeight)
	cmd.Printf("  Toggle cycle: %s\n", cfg.Table.ToggleCycle)
	cmd.Printf("  Multi-sort: %t\n", cfg.Table.MultiSort)
	cmd.Printf("  Wrap: %t\n", cfg.Table.Wrap)
	cmd.Printf("  Max column width: %d\n", cfg.Table.MaxColumnWidth)
	if cfg.Table.Collation != "" {
		cmd.Printf("  Collation: %s\n", cfg.Table.Collation)
	}
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}
