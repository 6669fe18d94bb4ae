// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bundler/internal/adapters/config"
	_ "go.trai.ch/bundler/internal/adapters/fs"
	_ "go.trai.ch/bundler/internal/adapters/less"
	_ "go.trai.ch/bundler/internal/adapters/logger"
	_ "go.trai.ch/bundler/internal/adapters/minify"
	_ "go.trai.ch/bundler/internal/adapters/store"
	_ "go.trai.ch/bundler/internal/adapters/telemetry"
	_ "go.trai.ch/bundler/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/bundler/internal/app"
)
