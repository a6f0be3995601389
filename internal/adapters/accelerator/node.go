package accelerator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envy/internal/adapters/logger"
	"go.trai.ch/envy/internal/adapters/shell"
	"go.trai.ch/envy/internal/core/ports"
)

// NodeID is the unique identifier for the accelerator installer Graft node.
const NodeID graft.ID = "adapter.accelerator"

func init() {
	graft.Register(graft.Node[ports.AcceleratorInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.RunnerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.AcceleratorInstaller, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(runner, log), nil
		},
	})
}
