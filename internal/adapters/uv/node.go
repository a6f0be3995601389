package uv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envy/internal/adapters/accelerator"
	"go.trai.ch/envy/internal/adapters/shell"
	"go.trai.ch/envy/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.Toolchain]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.RunnerNodeID, accelerator.NodeID},
		Run: func(ctx context.Context) (ports.Toolchain, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.AcceleratorInstaller](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner, installer), nil
		},
	})
}
