package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/reclog/internal/editor"
	"github.com/roach88/reclog/internal/prompt"
	"github.com/roach88/reclog/internal/recorder"
	"github.com/roach88/reclog/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution (including a declined dellast)
	ExitFailure      = 1 // Operation failed (key not found, editor failed, etc.)
	ExitCommandError = 2 // Command error (store unavailable, bad config, bad input)
)

// Error codes reported in CLI output.
const (
	ErrCodeKeyNotFound  = "E001" // Key absent from the store
	ErrCodeUnavailable  = "E002" // Store could not be opened or created
	ErrCodeInvalidInput = "E003" // Bad key, flag value, or missing input
	ErrCodeConfig       = "E004" // Config file unreadable or invalid
	ErrCodeEditor       = "E005" // Editor missing or failed
	ErrCodeGeneric      = "E099" // Anything else
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify maps an operation error to an output code and exit code.
func classify(err error) (code string, exit int) {
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		return ErrCodeKeyNotFound, ExitFailure
	case errors.Is(err, store.ErrUnavailable):
		return ErrCodeUnavailable, ExitCommandError
	case errors.Is(err, store.ErrInvalidKey), errors.Is(err, prompt.ErrNoInput), errors.Is(err, errInvalidInput):
		return ErrCodeInvalidInput, ExitCommandError
	case errors.Is(err, recorder.ErrNoEditor), errors.Is(err, editor.ErrFailed):
		return ErrCodeEditor, ExitFailure
	case errors.Is(err, errConfig):
		return ErrCodeConfig, ExitCommandError
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// RecordView is the JSON form of a record. Values are shown as text.
type RecordView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Records outputs records one per line as "key<TAB>value", or as a JSON
// list of RecordView.
func (f *OutputFormatter) Records(recs []store.Record) error {
	if f.Format == "json" {
		views := make([]RecordView, len(recs))
		for i, r := range recs {
			views[i] = RecordView{Key: r.Key, Value: string(r.Value)}
		}
		return f.Success(views)
	}

	for _, r := range recs {
		fmt.Fprintln(f.Writer, r)
	}
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the ExitError the command should return.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exit, code, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
