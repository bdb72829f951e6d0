package driver

import (
	"errors"
	"fmt"

	"docweave/internal/diag"
)

// ParseError means the input could not be scanned structurally.
type ParseError struct {
	Path string
	Line uint32 // 1-based; 0 when unknown
	Col  uint32
	Code diag.Code
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}

// DestinationConflictError means the output would replace the input without
// --overwrite.
type DestinationConflictError struct {
	Path string
}

func (e *DestinationConflictError) Error() string {
	return fmt.Sprintf("%s: destination is the input file (use --overwrite to replace it)", e.Path)
}

// PathError means the destination location is unusable.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() error { return e.Err }

// IOError wraps a failed read or write.
type IOError struct {
	Op   string // "read", "write", "rename", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Exit codes returned by the command line.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitParse    = 2
	ExitIO       = 3
	ExitConflict = 4
	ExitPath     = 5
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		pe *ParseError
		ce *DestinationConflictError
		pa *PathError
		io *IOError
	)
	switch {
	case errors.As(err, &pe):
		return ExitParse
	case errors.As(err, &ce):
		return ExitConflict
	case errors.As(err, &pa):
		return ExitPath
	case errors.As(err, &io):
		return ExitIO
	}
	return ExitFailure
}

// Kind names the failure class for error output.
func Kind(err error) string {
	switch ExitCode(err) {
	case ExitOK:
		return ""
	case ExitParse:
		return "ParseError"
	case ExitConflict:
		return "DestinationConflictError"
	case ExitPath:
		return "PathError"
	case ExitIO:
		return "IOError"
	}
	return "Error"
}
