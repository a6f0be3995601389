package ports

import "time"

// Renderer presents step progress to the operator.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnStepStart is called when a step begins.
	OnStepStart(spanID, name string, startTime time.Time)

	// OnStepComplete is called when a step finishes. err is nil on success.
	OnStepComplete(spanID string, endTime time.Time, err error)
}
