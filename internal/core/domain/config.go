package domain

import "time"

// Config is the resolved project configuration. Paths are absolute after
// loading; the loader resolves everything against the discovered root.
type Config struct {
	// Root is the project root, the directory the watcher observes.
	Root string

	Styles  StylesConfig
	Scripts ScriptsConfig
	Watch   WatchConfig
	Serve   ServeConfig
}

// StylesConfig controls stylesheet compilation.
type StylesConfig struct {
	// SourceDirs are the directories scanned for stylesheet sources.
	SourceDirs []string
	// OutputDir receives compiled CSS. Changes under it are never fed back
	// into the scheduler.
	OutputDir string
	// IncludePaths are external library roots used both for reference
	// resolution and as compiler include roots.
	IncludePaths []string
	// Extensions are the recognized source extensions.
	Extensions []string
	// CompilerCmd is the external compiler invocation, argv style.
	CompilerCmd []string
}

// ScriptsConfig controls script bundling.
type ScriptsConfig struct {
	// Entries are the bundler entry files.
	Entries []string
	// OutputDir receives bundled output.
	OutputDir string
	// Extensions are the source extensions routed to the bundler.
	Extensions []string
	// BundlerCmd is the external bundler invocation, argv style.
	BundlerCmd []string
}

// WatchConfig controls the change scheduler.
type WatchConfig struct {
	// DebounceMs is the settle window after the last event for a file.
	DebounceMs int
	// ExcludeExtensions are additional extensions suppressed from
	// notifications.
	ExcludeExtensions []string
	// SkipDirs are directory names excluded from watching and scanning.
	SkipDirs []string
}

// ServeConfig controls the live-update transport.
type ServeConfig struct {
	// Addr is the listen address for the WebSocket endpoint.
	Addr string
}

// DefaultDebounceWindow is used when the configuration does not set one.
const DefaultDebounceWindow = 50 * time.Millisecond

// DefaultServeAddr is the conventional live-reload port.
const DefaultServeAddr = ":35729"

// DebounceWindow returns the configured debounce window.
func (c *Config) DebounceWindow() time.Duration {
	if c.Watch.DebounceMs <= 0 {
		return DefaultDebounceWindow
	}
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// StyleExtensions returns the configured stylesheet extensions.
func (c *Config) StyleExtensions() []string {
	if len(c.Styles.Extensions) == 0 {
		return DefaultStyleExtensions
	}
	return c.Styles.Extensions
}

// ScriptExtensions returns the configured script extensions.
func (c *Config) ScriptExtensions() []string {
	if len(c.Scripts.Extensions) == 0 {
		return DefaultScriptExtensions
	}
	return c.Scripts.Extensions
}
