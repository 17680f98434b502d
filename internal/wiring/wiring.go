// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/ripplebuild/ripple/internal/adapters/bundler"
	_ "github.com/ripplebuild/ripple/internal/adapters/config"
	_ "github.com/ripplebuild/ripple/internal/adapters/livereload"
	_ "github.com/ripplebuild/ripple/internal/adapters/logger"
	_ "github.com/ripplebuild/ripple/internal/adapters/styles"
	_ "github.com/ripplebuild/ripple/internal/adapters/telemetry"
	_ "github.com/ripplebuild/ripple/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/ripplebuild/ripple/internal/app"
)
