package ports

import (
	"context"

	"go.trai.ch/envy/internal/core/domain"
)

// AcceleratorInstaller selects and installs the accelerator build for this machine.
//
//go:generate go run go.uber.org/mock/mockgen -source=accelerator.go -destination=mocks/mock_accelerator.go -package=mocks
type AcceleratorInstaller interface {
	// Detect inspects the machine and returns the variant that would be installed.
	// Detection never fails: anything unexpected falls back to the CPU variant.
	Detect(ctx context.Context, accel domain.AcceleratorSettings) domain.AcceleratorVariant

	// Install installs the variant into the environment described by settings.
	Install(ctx context.Context, settings domain.Settings, variant domain.AcceleratorVariant) error
}
