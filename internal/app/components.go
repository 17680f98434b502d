package app

import "github.com/ripplebuild/ripple/internal/core/ports"

// Components contains all the initialized application components. The CLI
// layer receives this struct instead of individual adapters.
type Components struct {
	App    *App
	Logger ports.Logger
}
