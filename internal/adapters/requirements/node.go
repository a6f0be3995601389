package requirements

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envy/internal/core/ports"
)

// NodeID is the unique identifier for the requirements reader Graft node.
const NodeID graft.ID = "adapter.requirements_reader"

func init() {
	graft.Register(graft.Node[ports.RequirementsReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RequirementsReader, error) {
			return NewReader(), nil
		},
	})
}
