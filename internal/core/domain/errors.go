package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no configuration file is found
	// walking up from the working directory.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoSourcesFound is returned when the initial scan locates no
	// stylesheet sources under the configured roots. This is the only
	// fatal condition in the pipeline.
	ErrNoSourcesFound = zerr.New("no stylesheet sources found under configured roots")

	// ErrReferenceNotFound is returned when an import reference resolves to
	// no existing file. Callers log it and continue.
	ErrReferenceNotFound = zerr.New("reference could not be resolved")

	// ErrSourceReadFailed is returned when a stylesheet cannot be read
	// during a graph scan.
	ErrSourceReadFailed = zerr.New("failed to read stylesheet source")

	// ErrCompileFailed is returned when the external stylesheet compiler
	// rejects an entry file.
	ErrCompileFailed = zerr.New("stylesheet compilation failed")

	// ErrBundleFailed is returned when the external script bundler fails.
	ErrBundleFailed = zerr.New("script bundling failed")

	// ErrOutputWriteFailed is returned when compiled output cannot be
	// written to the output directory.
	ErrOutputWriteFailed = zerr.New("failed to write compiled output")

	// ErrWatchFailed is returned when the file system watcher cannot be
	// started on the project root.
	ErrWatchFailed = zerr.New("failed to start file system watcher")

	// ErrServeFailed is returned when the live-update server cannot listen
	// on the configured address.
	ErrServeFailed = zerr.New("failed to start live-update server")
)
