package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envy/internal/adapters/accelerator" //nolint:depguard // Wired in app layer
	"go.trai.ch/envy/internal/adapters/cas"         //nolint:depguard // Wired in app layer
	"go.trai.ch/envy/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/envy/internal/adapters/linear"      //nolint:depguard // Wired in app layer
	"go.trai.ch/envy/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/envy/internal/adapters/shell"       //nolint:depguard // Wired in app layer
	"go.trai.ch/envy/internal/adapters/watcher"     //nolint:depguard // Wired in app layer
	"go.trai.ch/envy/internal/core/ports"
	"go.trai.ch/envy/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			accelerator.NodeID,
			shell.SessionNodeID,
			cas.NodeID,
			watcher.WatcherNodeID,
			linear.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	p, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[ports.AcceleratorInstaller](ctx)
	if err != nil {
		return nil, err
	}

	session, err := graft.Dep[ports.Session](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RunRecordStore](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, p, installer, session, store, w, renderer, log), nil
}
