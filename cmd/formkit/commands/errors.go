package commands

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
)

// Exit codes returned to the operating system.
const (
	ExitSuccess = 0
	// ExitUser covers invalid input: bad flags, schemas, values or config.
	ExitUser = 1
	// ExitSystem covers I/O and rendering failures.
	ExitSystem = 2
)

var errInvalidValues = errors.New("values failed validation")

// ExitError carries the exit code a failure maps to.
type ExitError struct {
	Err  error
	Code int
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func userError(err error, hint string) error {
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return &ExitError{Err: err, Code: ExitUser}
}

func systemError(err error, hint string) error {
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return &ExitError{Err: err, Code: ExitSystem}
}

// ExitCode maps err to a process exit code. Errors without an explicit code
// are treated as user errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}

// PrintError writes err and any hints attached to it.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
