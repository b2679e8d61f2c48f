package config

import (
	"github.com/rshade/vtable/internal/logging"
)

// ToLoggingConfig converts the logging section into a logger configuration.
// A configured file switches output to that file; otherwise logs go to stderr.
func (c LoggingConfig) ToLoggingConfig() logging.Config {
	out := logging.Config{
		Level:  c.Level,
		Format: c.Format,
		Output: logging.OutputStderr,
	}
	if c.File != "" {
		out.Output = logging.OutputFile
		out.File = c.File
	}
	return out
}
