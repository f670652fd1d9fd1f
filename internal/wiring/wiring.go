// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mirror/internal/adapters/cas"
	_ "go.trai.ch/mirror/internal/adapters/config"
	_ "go.trai.ch/mirror/internal/adapters/fs"
	_ "go.trai.ch/mirror/internal/adapters/logger"
	_ "go.trai.ch/mirror/internal/adapters/shell"
	_ "go.trai.ch/mirror/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/mirror/internal/app"
	_ "go.trai.ch/mirror/internal/engine/executor"
	_ "go.trai.ch/mirror/internal/engine/planner"
	_ "go.trai.ch/mirror/internal/engine/reconciler"
)
