package ports

import (
	"context"

	"go.trai.ch/envy/internal/core/domain"
)

// Session hands the operator over to the provisioned environment.
//
//go:generate mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks
type Session interface {
	// Handoff activates the environment for the operator. It is the last thing a run does.
	Handoff(ctx context.Context, settings domain.Settings) error
}
