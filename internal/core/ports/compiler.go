package ports

import "context"

// CompileRequest describes one stylesheet compilation.
type CompileRequest struct {
	// EntryPath is the entry file to compile.
	EntryPath string
	// IncludeRoots are external library roots passed to the compiler.
	IncludeRoots []string
	// Command is the compiler invocation in argv form, from configuration.
	Command []string
}

// CompileResult holds the output of a successful compilation.
type CompileResult struct {
	CSS       string
	SourceMap string
}

// StyleCompiler is the external stylesheet compiler boundary. The pipeline
// calls it once per resolved entry file after invalidation.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type StyleCompiler interface {
	Compile(ctx context.Context, req CompileRequest) (*CompileResult, error)
}

// BundleRequest describes one script bundling run.
type BundleRequest struct {
	// EntryFiles are the bundler entry files.
	EntryFiles []string
	// OutputDir receives bundled output.
	OutputDir string
	// Command is the bundler invocation in argv form, from configuration.
	Command []string
}

// BundleResult holds the outputs of a bundling run.
type BundleResult struct {
	// Outputs are the produced output file paths.
	Outputs []string
}

// ScriptBundler is the external bundler/transpiler boundary, invoked on
// script-source changes.
type ScriptBundler interface {
	Build(ctx context.Context, req BundleRequest) (*BundleResult, error)
}
