package table

import (
	"errors"
	"fmt"
)

// Configuration problems. None of them is fatal: the Table recovers by
// ignoring or clamping the offending value and reports a *ConfigError to its
// warning sink.
var (
	ErrUnknownColumn    = errors.New("unknown column")
	ErrNotSortable      = errors.New("column is not sortable")
	ErrDuplicateSortKey = errors.New("duplicate sort key")
	ErrInvalidOverscan  = errors.New("invalid overscan")
	ErrInvalidHeight    = errors.New("invalid row height")
	ErrInvalidCollation = errors.New("invalid collation locale")
	ErrInvalidSortSpec  = errors.New("invalid sort expression")
)

// ConfigError describes a recovered configuration problem.
type ConfigError struct {
	Err    error
	Column string
	Value  any
}

func (e *ConfigError) Error() string {
	switch {
	case e.Column != "" && e.Value != nil:
		return fmt.Sprintf("%v: column %q: %v", e.Err, e.Column, e.Value)
	case e.Column != "":
		return fmt.Sprintf("%v: column %q", e.Err, e.Column)
	case e.Value != nil:
		return fmt.Sprintf("%v: %v", e.Err, e.Value)
	default:
		return e.Err.Error()
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
