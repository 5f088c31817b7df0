package consolidate

import (
	"errors"
	"fmt"
)

// ErrUserAborted is returned when a confirmation is declined.
var ErrUserAborted = errors.New("aborted by user")

// OutputDirUnavailableError reports an output directory that could not be
// created, inspected or cleared.
type OutputDirUnavailableError struct {
	Dir string
	Err error
}

func (e *OutputDirUnavailableError) Error() string {
	return fmt.Sprintf("output directory unavailable: %s: %v", e.Dir, e.Err)
}

func (e *OutputDirUnavailableError) Unwrap() error {
	return e.Err
}

// CopyFailedError reports a representative that could not be copied.
type CopyFailedError struct {
	Source string
	Dest   string
	Err    error
}

func (e *CopyFailedError) Error() string {
	return fmt.Sprintf("copy failed: %s -> %s: %v", e.Source, e.Dest, e.Err)
}

func (e *CopyFailedError) Unwrap() error {
	return e.Err
}
