// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the CCG CLI.
//
// It defines UserError, a type that carries structured error information
// including what went wrong, why it happened, and how to fix it, plus a
// fixed exit-code table so every top-level failure mode maps to a
// stable, documented process exit status.
//
// # Usage Example
//
//	err := errors.NewStorageError(
//	    "Cannot write to the content-addressed store",
//	    "The CAS root is on a read-only filesystem",
//	    "Point cas.storage_path at a writable directory",
//	    underlyingErr,
//	)
//	if err != nil {
//	    errors.FatalError(err, false)
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): successful execution.
//   - ExitConfig (1): bad configuration (ConfigError).
//   - ExitStorage (2): CAS invariant violation or bad digest (StorageError).
//   - ExitGraph (3): graph executor rejected a statement (GraphError).
//   - ExitIO (4): filesystem or snapshot-serialization failure (IoError,
//     SerializationError).
//   - ExitInput (5): bad CLI usage.
//   - ExitInternal (10): unexpected internal bug.
//
// ParserError never reaches this table: per the parser registry's
// resilience policy, a parse failure always degrades to the fallback
// scanner rather than aborting the run.
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates bad configuration options.
	ExitConfig = 1

	// ExitStorage indicates a content-addressed store invariant
	// violation or an invalid digest.
	ExitStorage = 2

	// ExitGraph indicates the graph executor rejected a statement.
	ExitGraph = 3

	// ExitIO indicates a filesystem or snapshot-serialization failure.
	ExitIO = 4

	// ExitInput indicates invalid CLI usage (bad flags/arguments).
	ExitInput = 5

	// ExitInternal indicates an unexpected internal bug.
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information:
//   - Message: what went wrong (user-facing error description)
//   - Cause: why it happened (diagnostic information)
//   - Fix: how to fix it (actionable suggestion)
type UserError struct {
	Message  string
	Cause    string
	Fix      string
	ExitCode int

	// Err is the underlying error that caused this error (optional).
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap enables errors.Is/errors.As over the wrapped cause.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a bad-configuration error (exit code
// ExitConfig).
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewStorageError creates a content-addressed-store error (exit code
// ExitStorage): invariant violations, bad digests, unwritable CAS root.
func NewStorageError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitStorage, Err: err}
}

// NewGraphError creates a graph-executor error (exit code ExitGraph):
// the backend rejected a statement or the connection could not be
// established.
func NewGraphError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitGraph, Err: err}
}

// NewIoError creates a filesystem error (exit code ExitIO): unreadable
// paths, permission failures, directory walk failures.
func NewIoError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitIO, Err: err}
}

// NewSerializationError creates a snapshot (de)serialization error
// (exit code ExitIO, shared with IoError per the documented table).
func NewSerializationError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitIO, Err: err}
}

// NewInputError creates a bad-CLI-usage error (exit code ExitInput).
// Input errors typically do not wrap an underlying error.
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInput}
}

// NewInternalError creates an unexpected-bug error (exit code
// ExitInternal).
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display: a
// red/bold Error line, a yellow Cause line, a green Fix line. Color
// output respects NO_COLOR and the noColor parameter. Empty Cause or
// Fix are omitted.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON is the JSON-serializable form of a UserError, for CLI
// commands that support --json output mode.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to its JSON-serializable form.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{Error: e.Message, Cause: e.Cause, Fix: e.Fix, ExitCode: e.ExitCode}
}

// FatalError prints err and exits with the matching code. For a
// *UserError it uses Format() (or ToJSON() under jsonOutput); any other
// error prints a plain message and exits ExitInternal. Never returns.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}
