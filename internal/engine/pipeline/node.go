package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envy/internal/adapters/cas"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envy/internal/adapters/fs"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envy/internal/adapters/logger"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envy/internal/adapters/requirements" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envy/internal/adapters/shell"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envy/internal/adapters/telemetry"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envy/internal/adapters/uv"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envy/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.LocatorNodeID,
			uv.NodeID,
			requirements.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			shell.SessionNodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			locator, err := graft.Dep[ports.ToolLocator](ctx)
			if err != nil {
				return nil, err
			}

			toolchain, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}

			reader, err := graft.Dep[ports.RequirementsReader](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.RunRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			session, err := graft.Dep[ports.Session](ctx)
			if err != nil {
				return nil, err
			}

			return New(locator, toolchain, reader, hasher, store, tracer, log, session), nil
		},
	})
}
