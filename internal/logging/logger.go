// Package logging builds the zerolog loggers used across vtable.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output targets.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputDiscard = "discard"
)

// Formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects level, format and destination of a logger.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// Result is a constructed logger together with the resources it holds.
type Result struct {
	Logger zerolog.Logger
	// FilePath is the log file in use, empty when not logging to a file.
	FilePath string
	// FallbackReason explains why file output fell back to stderr.
	FallbackReason string

	file *os.File
}

// Close releases the log file, if any.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg. An unparsable level falls back to info.
// When the log file cannot be opened the logger writes to stderr and the
// reason is recorded in FallbackReason.
func NewLogger(cfg Config) *Result {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	res := &Result{}
	var out io.Writer = os.Stderr

	switch cfg.Output {
	case OutputDiscard:
		res.Logger = zerolog.Nop()
		return res
	case OutputFile:
		f, fileErr := openLogFile(cfg.File)
		if fileErr != nil {
			res.FallbackReason = fileErr.Error()
			break
		}
		res.file = f
		res.FilePath = cfg.File
		out = f
	}

	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    res.file != nil,
		}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	res.Logger = ctx.Logger()
	return res
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}
