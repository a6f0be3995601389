package domain

import (
	"errors"
	"fmt"
)

// Step names a stage of the provisioning pipeline.
type Step string

const (
	// StepPreconditions verifies that the required tools are reachable.
	StepPreconditions Step = "preconditions"
	// StepProvision creates the environment when it is absent.
	StepProvision Step = "provision"
	// StepCompile resolves the manifest into the lock file.
	StepCompile Step = "compile"
	// StepSync makes the environment match the lock file.
	StepSync Step = "sync"
	// StepAccelerator installs the hardware specific runtime.
	StepAccelerator Step = "accelerator"
	// StepHandoff leaves the operator in an activated session.
	StepHandoff Step = "handoff"
)

// Steps returns every pipeline step in execution order.
func Steps() []Step {
	return []Step{StepPreconditions, StepProvision, StepCompile, StepSync, StepAccelerator, StepHandoff}
}

// Status is the tag of a stage outcome.
type Status uint8

const (
	// StatusSuccess means the stage did its work.
	StatusSuccess Status = iota
	// StatusSkipped means the stage decided not to run; the pipeline continues.
	StatusSkipped
	// StatusSoftFailure means the stage failed but the pipeline continues.
	StatusSoftFailure
	// StatusFatal means the stage failed and the pipeline stops.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusSoftFailure:
		return "soft-failure"
	case StatusFatal:
		return "fatal"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// ErrorKind classifies a failed stage.
type ErrorKind uint8

const (
	// KindNone is used for successful or skipped outcomes.
	KindNone ErrorKind = iota
	// KindMissingTool is fatal: a required executable is not on PATH.
	KindMissingTool
	// KindEnvironmentCreationFailed is fatal: the environment could not be created.
	KindEnvironmentCreationFailed
	// KindCompileFailed is fatal: the lock file could not be produced.
	KindCompileFailed
	// KindSyncFailed is fatal: the environment could not be synchronized.
	KindSyncFailed
	// KindAcceleratorInstallFailed is soft: the application can run without acceleration.
	KindAcceleratorInstallFailed
	// KindHandoffFailed is soft: provisioning already succeeded.
	KindHandoffFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingTool:
		return "MissingTool"
	case KindEnvironmentCreationFailed:
		return "EnvironmentCreationFailed"
	case KindCompileFailed:
		return "CompileFailed"
	case KindSyncFailed:
		return "SyncFailed"
	case KindAcceleratorInstallFailed:
		return "AcceleratorInstallFailed"
	case KindHandoffFailed:
		return "HandoffFailed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Outcome is the tagged result of one pipeline stage.
type Outcome struct {
	Step   Step
	Status Status
	Kind   ErrorKind
	// Detail is a short human readable note (e.g. "reusing existing environment").
	Detail string
	// Err is the underlying cause for failed outcomes.
	Err error
}

// Succeeded returns a successful outcome.
func Succeeded(step Step, detail string) Outcome {
	return Outcome{Step: step, Status: StatusSuccess, Detail: detail}
}

// Skipped returns an outcome for a stage that chose not to run.
func Skipped(step Step, detail string) Outcome {
	return Outcome{Step: step, Status: StatusSkipped, Detail: detail}
}

// SoftFailure returns an outcome for a failure the pipeline tolerates.
func SoftFailure(step Step, kind ErrorKind, err error) Outcome {
	return Outcome{Step: step, Status: StatusSoftFailure, Kind: kind, Detail: errorDetail(err), Err: err}
}

// Fatal returns an outcome that stops the pipeline.
func Fatal(step Step, kind ErrorKind, err error) Outcome {
	return Outcome{Step: step, Status: StatusFatal, Kind: kind, Detail: errorDetail(err), Err: err}
}

func errorDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// OK reports whether the pipeline may continue after this outcome.
func (o Outcome) OK() bool {
	return o.Status != StatusFatal
}

// Error converts a fatal outcome into a *StepError. It returns nil for any other status.
func (o Outcome) Error() error {
	if o.Status != StatusFatal {
		return nil
	}
	return &StepError{Step: o.Step, Kind: o.Kind, Cause: o.Err}
}

// StepError is returned when the pipeline stops on a fatal stage.
// The cause is the error reported by the external tool, unmodified.
type StepError struct {
	Step  Step
	Kind  ErrorKind
	Cause error
}

func (e *StepError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s step failed (%s)", e.Step, e.Kind)
	}
	return fmt.Sprintf("%s step failed (%s): %v", e.Step, e.Kind, e.Cause)
}

// Message returns the error message without the cause chain.
func (e *StepError) Message() string {
	return fmt.Sprintf("%s step failed (%s)", e.Step, e.Kind)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// AsStepError extracts a *StepError from an error chain.
func AsStepError(err error) (*StepError, bool) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr, true
	}
	return nil, false
}

// Report collects the outcomes of one pipeline run in execution order.
type Report struct {
	Mode     RunMode
	Outcomes []Outcome
}

// Add appends an outcome to the report.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Fatal returns the fatal outcome that stopped the run, if any.
func (r Report) Fatal() (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Status == StatusFatal {
			return o, true
		}
	}
	return Outcome{}, false
}

// Warnings returns the soft failures recorded during the run.
func (r Report) Warnings() []Outcome {
	var warnings []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusSoftFailure {
			warnings = append(warnings, o)
		}
	}
	return warnings
}

// Outcome returns the outcome recorded for a step.
func (r Report) Outcome(step Step) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Step == step {
			return o, true
		}
	}
	return Outcome{}, false
}

// Reached reports whether the given step was executed (whatever its result).
func (r Report) Reached(step Step) bool {
	_, ok := r.Outcome(step)
	return ok
}

// Succeeded reports whether the run finished without a fatal outcome.
func (r Report) Succeeded() bool {
	_, failed := r.Fatal()
	return !failed
}
