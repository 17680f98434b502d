package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/ripplebuild/ripple/internal/adapters/bundler"
	"github.com/ripplebuild/ripple/internal/adapters/config"
	"github.com/ripplebuild/ripple/internal/adapters/livereload"
	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/adapters/styles"
	"github.com/ripplebuild/ripple/internal/adapters/telemetry"
	"github.com/ripplebuild/ripple/internal/adapters/watcher"
	"github.com/ripplebuild/ripple/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			styles.NodeID,
			bundler.NodeID,
			watcher.WatcherNodeID,
			watcher.ContentTrackerNodeID,
			telemetry.NodeID,
			logger.NodeID,
			livereload.HubNodeID,
			livereload.ServerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	compiler, err := graft.Dep[ports.StyleCompiler](ctx)
	if err != nil {
		return nil, err
	}
	scriptBundler, err := graft.Dep[ports.ScriptBundler](ctx)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	tracker, err := graft.Dep[*watcher.ContentTracker](ctx)
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
	hub, err := graft.Dep[*livereload.Hub](ctx)
	if err != nil {
		return nil, err
	}
	server, err := graft.Dep[*livereload.Server](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, compiler, scriptBundler, fsWatcher, tracer, log, tracker, hub, server), nil
}
