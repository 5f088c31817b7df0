package main

import (
	"context"
	"errors"
	"fmt"

	"signaldedup/internal/consolidate"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitCanceled = 130
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: exitUsage, Err: err}
}

// exitCodeFor maps a command error to the process exit status.
func exitCodeFor(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, consolidate.ErrUserAborted):
		return exitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, context.Canceled):
		return exitCanceled
	default:
		return exitFailure
	}
}

// shouldReport reports whether err deserves a message on stderr; aborts and
// cancellations have already been explained or were requested.
func shouldReport(err error) bool {
	if err == nil || errors.Is(err, consolidate.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return false
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return false
	}
	return true
}
