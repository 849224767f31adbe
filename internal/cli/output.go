package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Exit codes for CLI commands.
const (
	ExitSuccess    = 0
	ExitFailure    = 1 // the command ran but could not produce a result
	ExitInputError = 2 // bad flags, unreadable or invalid plan
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without an underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code and message.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode extracts the exit code from an error, ExitFailure if it has none.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Output writes command results as rendered text or JSON.
type Output struct {
	Format string // "text" or "json"
	Writer io.Writer
	Err    io.Writer // diagnostics; kept apart so JSON stays parseable
	Quiet  bool
}

// JSON reports whether results are emitted as JSON.
func (o *Output) JSON() bool {
	return o.Format == "json"
}

// Emit writes either the JSON encoding of data or the text from render.
func (o *Output) Emit(data any, render func() string) error {
	if o.JSON() {
		enc := json.NewEncoder(o.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	_, err := fmt.Fprint(o.Writer, render())
	return err
}

// Logf writes a diagnostic line unless quiet.
func (o *Output) Logf(format string, args ...any) {
	if o.Quiet || o.Err == nil {
		return
	}
	fmt.Fprintf(o.Err, format+"\n", args...)
}
