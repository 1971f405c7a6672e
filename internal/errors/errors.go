// Package errors provides sentinel errors and error types for the engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed position description.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrMissingKing indicates a position without exactly one king per side.
	ErrMissingKing = errors.New("missing or extra king")

	// ErrInvalidMove indicates move text that cannot be decoded.
	ErrInvalidMove = errors.New("invalid move notation")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrUnknownCommand indicates a protocol line with an unknown verb.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSessionNotFound indicates an unknown server session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionLimit indicates the server already holds its maximum
	// number of sessions.
	ErrSessionLimit = errors.New("too many sessions")

	// ErrPositionChanged indicates a search result that no longer applies
	// because the position was replaced while searching.
	ErrPositionChanged = errors.New("position changed during search")

	// ErrStopped indicates work abandoned because a search was stopped.
	ErrStopped = errors.New("search stopped")
)

// FieldError reports which field of a position description was rejected.
type FieldError struct {
	Err   error  // The underlying error
	Field string // Field name, e.g. "placement", "castling"
	Value string // The offending text
}

// Error returns a formatted error message naming the field and value.
func (e *FieldError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Value))
	}
	context := strings.Join(parts, " ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "field error"
	}
	return context
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// MoveError wraps errors with the move text and the position it was
// played in.
type MoveError struct {
	Err  error  // The underlying error
	Move string // The move text that caused the error
	FEN  string // Position the move was attempted in (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("move %q", e.Move))
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.FEN))
	}
	context := strings.Join(parts, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// CommandError wraps a protocol failure with the command verb.
type CommandError struct {
	Err     error
	Command string
}

// Error returns a formatted error message.
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return e.Command
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
