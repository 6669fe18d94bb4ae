package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundler/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/adapters/less"      //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/adapters/minify"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/bundler/internal/core/ports"
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
			logger.NodeID,
			fs.NodeID,
			less.NodeID,
			minify.NodeID,
			telemetry.TracerNodeID,
			store.NodeID,
			watcher.WatcherNodeID,
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
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}
	compiler, err := graft.Dep[ports.StyleCompiler](ctx)
	if err != nil {
		return nil, err
	}
	minifier, err := graft.Dep[ports.Minifier](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, fsys, compiler, minifier, tracer, artifacts, w), nil
}
