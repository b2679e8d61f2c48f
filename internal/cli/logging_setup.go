package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/vtable/internal/config"
	"github.com/rshade/vtable/internal/logging"
)

const defaultLogFile = "vtable.log"

// setupLogging configures logging based on config file, environment, and CLI
// flags, and stores the logger on the command context.
//
// Commands that take over the terminal never log to it: without a configured
// file their logs are discarded, or written to the default log file under
// --debug.
func setupLogging(cmd *cobra.Command, st *state) {
	lc := st.cfg.Logging.ToLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		lc.Level = "debug"
	}

	if takesTerminal(cmd) && lc.Output == logging.OutputStderr {
		lc.Output = logging.OutputDiscard
		if debug {
			if dir, err := config.Dir(); err == nil {
				lc.Output = logging.OutputFile
				lc.File = filepath.Join(dir, defaultLogFile)
			}
		}
	}

	st.logs = logging.NewLogger(lc)
	st.logger = logging.ComponentLogger(st.logs.Logger, "cli")

	if st.logs.FilePath != "" && debug {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Logging to %s\n", st.logs.FilePath)
	} else if st.logs.FallbackReason != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open log file, logging to stderr: %s\n",
			st.logs.FallbackReason)
	}

	cmd.SetContext(st.logger.WithContext(cmd.Context()))
	st.logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

// takesTerminal reports whether cmd is about to run an interactive UI on stdout.
func takesTerminal(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationTUI] == "" {
		return false
	}
	plain, _ := cmd.Flags().GetBool("plain")
	return !plain && writerIsTerminal(cmd)
}

func writerIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}
