package automation

import (
	"errors"
	"fmt"
)

// Stage names the phase of the run state machine an error occurred in.
type Stage string

const (
	StageStarting     Stage = "starting"
	StageNavigating   Stage = "navigating"
	StageEntryPoint   Stage = "entry_point"
	StageRegistration Stage = "registration"
	StageFilling      Stage = "filling"
	StageRecording    Stage = "recording"
	StageCompleted    Stage = "completed"
)

// Kind classifies run failures.
type Kind string

const (
	// KindLocator means a form control could not be found or operated
	// within its timeout.
	KindLocator Kind = "locator_failure"
	// KindSubmission means the form was filled but the outcome could not
	// be recorded.
	KindSubmission Kind = "submission_failure"
	// KindCancelled means the run context was cancelled or the run budget
	// expired.
	KindCancelled Kind = "cancelled"
)

// ErrRunInProgress is returned when a run for the same user and form type is
// already active.
var ErrRunInProgress = errors.New("automation run already in progress")

// RunError carries where and why a run failed. Field is the merged-field or
// control label involved, when one applies.
type RunError struct {
	Stage Stage
	Kind  Kind
	Field string
	Err   error
}

func (e *RunError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("automation %s at stage %s (field %q): %v", e.Kind, e.Stage, e.Field, e.Err)
	}
	return fmt.Sprintf("automation %s at stage %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

func newRunError(stage Stage, kind Kind, field string, err error) *RunError {
	return &RunError{Stage: stage, Kind: kind, Field: field, Err: err}
}
