package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/ripplebuild/ripple/internal/adapters/livereload"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"github.com/ripplebuild/ripple/internal/engine/graph"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// handleChange processes one settled change from the scheduler. Stylesheet
// changes flow through the graph and invalidation; script changes go
// straight to the bundler; anything else is classified and broadcast.
func (a *App) handleChange(ctx context.Context, cfg *domain.Config, g *graph.Graph, path string) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case slices.Contains(cfg.StyleExtensions(), ext):
		a.handleStyleChange(ctx, cfg, g, path)
	case slices.Contains(cfg.ScriptExtensions(), ext):
		a.bundleScripts(ctx, cfg)
	default:
		a.broadcast(cfg, cfg.Styles.OutputDir, path)
	}
}

// handleStyleChange refreshes the changed file's edges, resolves the entry
// files it invalidates and recompiles them.
func (a *App) handleStyleChange(ctx context.Context, cfg *domain.Config, g *graph.Graph, path string) {
	if !a.tracker.Changed(path) {
		return
	}

	if g.Contains(path) {
		if err := g.RefreshOne(path); err != nil {
			a.logger.Error(zerr.Wrap(err, "could not rescan "+path))
		}
	}

	entries := g.EntryFilesAffectedBy(path)
	slices.Sort(entries)
	a.compileEntries(ctx, cfg, entries)
}

// compileEntries compiles every entry concurrently. Failures never abort
// the batch: each failed entry gets a fallback output and its own log line.
func (a *App) compileEntries(ctx context.Context, cfg *domain.Config, entries []string) {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for _, entry := range entries {
		eg.Go(func() error {
			a.compileOne(ctx, cfg, entry)
			return nil
		})
	}
	_ = eg.Wait()
}

// compileOne compiles a single entry file, writes its output and broadcasts
// the change. On compiler failure a comment-only fallback stylesheet is
// written so downstream watchers still observe a change, and the broadcast
// fires so clients can show the failed state.
func (a *App) compileOne(ctx context.Context, cfg *domain.Config, entry string) {
	ctx, span := a.tracer.Start(ctx, "compile "+filepath.Base(entry))
	defer span.End()
	span.SetAttribute("entry", entry)

	outPath := a.outputPathFor(cfg, entry)

	res, err := a.compiler.Compile(ctx, ports.CompileRequest{
		EntryPath:    entry,
		IncludeRoots: cfg.Styles.IncludePaths,
		Command:      cfg.Styles.CompilerCmd,
	})

	css := ""
	sourceMap := ""
	if err != nil {
		span.RecordError(err)
		a.logger.Error(zerr.Wrap(err, "compilation failed for "+entry))
		css = fallbackCSS(entry, err)
	} else {
		css = res.CSS
		sourceMap = res.SourceMap
	}

	if err := os.MkdirAll(filepath.Dir(outPath), domain.DirPerm); err != nil {
		a.logger.Error(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()))
		return
	}
	if err := os.WriteFile(outPath, []byte(css), domain.FilePerm); err != nil {
		a.logger.Error(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()))
		return
	}
	if sourceMap != "" {
		mapPath := outPath + domain.SourceMapExtension
		if err := os.WriteFile(mapPath, []byte(sourceMap), domain.FilePerm); err != nil {
			a.logger.Error(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()))
		}
	}

	a.logger.Info("compiled " + livereload.DisplayPath(cfg.Styles.OutputDir, outPath))
	a.broadcast(cfg, cfg.Styles.OutputDir, outPath)
}

// bundleScripts runs the configured bundler over all script entries and
// broadcasts each produced output.
func (a *App) bundleScripts(ctx context.Context, cfg *domain.Config) {
	if len(cfg.Scripts.Entries) == 0 {
		return
	}

	ctx, span := a.tracer.Start(ctx, "bundle scripts")
	defer span.End()
	span.SetAttribute("entries", len(cfg.Scripts.Entries))

	res, err := a.bundler.Build(ctx, ports.BundleRequest{
		EntryFiles: cfg.Scripts.Entries,
		OutputDir:  cfg.Scripts.OutputDir,
		Command:    cfg.Scripts.BundlerCmd,
	})
	if err != nil {
		span.RecordError(err)
		a.logger.Error(zerr.Wrap(err, "script bundling failed"))
		return
	}

	for _, out := range res.Outputs {
		a.broadcast(cfg, cfg.Scripts.OutputDir, out)
	}
}

// broadcast applies the suppression rules and, when the change survives
// them, fans the notification out to all connected clients.
func (a *App) broadcast(cfg *domain.Config, outputRoot, path string) {
	kind, ok := livereload.Classify(path, cfg.StyleExtensions(), cfg.Watch.ExcludeExtensions)
	if !ok {
		return
	}
	a.notifier.Broadcast(kind, livereload.DisplayPath(outputRoot, path))
}

// outputPathFor maps an entry source file to its compiled output path.
func (a *App) outputPathFor(cfg *domain.Config, entry string) string {
	base := filepath.Base(entry)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + domain.CSSExtension
	return filepath.Join(cfg.Styles.OutputDir, base)
}

// fallbackCSS renders the comment-only stylesheet written when compilation
// fails.
func fallbackCSS(entry string, err error) string {
	detail := strings.ReplaceAll(err.Error(), "*/", "* /")
	return fmt.Sprintf("/* compilation failed: %s\n%s\n*/\n", entry, detail)
}
