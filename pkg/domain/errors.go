package domain

import (
	"errors"
	"fmt"
)

// ErrConfig is returned when the run options are inconsistent or malformed.
var ErrConfig = errors.New("configuration error")

// ErrSetup is returned when the working directory cannot be prepared.
var ErrSetup = errors.New("setup error")

// ErrCommand is returned when a command cannot be started or exits with an unexpected code.
var ErrCommand = errors.New("command failed")

// ErrCondition is returned when a post-condition does not hold.
var ErrCondition = errors.New("condition failed")

// StageError ties a failure to the pipeline stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Fail builds a StageError wrapping a category sentinel and a formatted message.
func Fail(stage Stage, kind error, format string, args ...any) error {
	return &StageError{
		Stage: stage,
		Err:   fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}

// ExitCodeError describes a command whose return code did not match the expected one.
type ExitCodeError struct {
	Argv []string
	Got  int
	Want int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("return code %d doesn't match expected %d", e.Got, e.Want)
}

// StageOf returns the stage an error was raised in, if any.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
