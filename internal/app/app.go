// Package app implements the application layer for ripple: the one-shot
// build and the watch loop that ties the graph, scheduler, compilers and
// live-update transport together.
package app

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ripplebuild/ripple/internal/adapters/livereload"
	"github.com/ripplebuild/ripple/internal/adapters/watcher"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"github.com/ripplebuild/ripple/internal/engine/graph"
	"github.com/ripplebuild/ripple/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	compiler     ports.StyleCompiler
	bundler      ports.ScriptBundler
	watcher      ports.Watcher
	tracer       ports.Tracer
	logger       ports.Logger
	tracker      *watcher.ContentTracker
	notifier     ports.Notifier
	server       *livereload.Server

	// rebuildMu guards the structural-rebuild debounce timer.
	rebuildMu    sync.Mutex
	rebuildTimer *time.Timer
}

// New creates a new App instance. server may be nil for one-shot builds.
func New(
	loader ports.ConfigLoader,
	compiler ports.StyleCompiler,
	bundler ports.ScriptBundler,
	w ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
	tracker *watcher.ContentTracker,
	notifier ports.Notifier,
	server *livereload.Server,
) *App {
	return &App{
		configLoader: loader,
		compiler:     compiler,
		bundler:      bundler,
		watcher:      w,
		tracer:       tracer,
		logger:       log,
		tracker:      tracker,
		notifier:     notifier,
		server:       server,
	}
}

// Build runs one full build: scan sources, derive the graph, compile every
// entry file and bundle configured scripts. It fails when no sources exist
// under the configured roots.
func (a *App) Build(ctx context.Context, cwd string) error {
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	g, err := a.buildGraph(ctx, cfg)
	if err != nil {
		return err
	}

	entries := g.EntryFiles()
	slices.Sort(entries)
	a.compileEntries(ctx, cfg, entries)

	if len(cfg.Scripts.Entries) > 0 {
		a.bundleScripts(ctx, cfg)
	}
	return nil
}

// Watch runs the full build once, then watches the project root and rebuilds
// incrementally until the context is canceled.
func (a *App) Watch(ctx context.Context, cwd string) error {
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	g, err := a.buildGraph(ctx, cfg)
	if err != nil {
		return err
	}

	entries := g.EntryFiles()
	slices.Sort(entries)
	a.compileEntries(ctx, cfg, entries)
	if len(cfg.Scripts.Entries) > 0 {
		a.bundleScripts(ctx, cfg)
	}

	if err := a.server.Start(ctx, cfg.Serve.Addr); err != nil {
		return err
	}
	a.logger.Info("live updates on " + cfg.Serve.Addr)

	if err := a.watcher.Start(ctx, cfg.Root, cfg.Watch.SkipDirs); err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	a.logger.Info("watching " + cfg.Root)

	sched := scheduler.New(cfg.DebounceWindow(), func(path string) {
		a.handleChange(ctx, cfg, g, path)
	})

	for event := range a.watcher.Events() {
		if a.isOutputPath(cfg, event.Path) {
			continue
		}

		switch event.Operation {
		case ports.OpCreate, ports.OpWrite:
			// Directory creations only matter to the watcher itself.
			if info, statErr := os.Stat(event.Path); statErr == nil && info.IsDir() {
				continue
			}
			sched.OnEvent(event.Path)
		case ports.OpRemove, ports.OpRename:
			// Structure changed; re-derive the whole graph after a quiet
			// period so bulk deletes coalesce into one rebuild.
			a.scheduleRebuild(ctx, cfg, g)
		}
	}

	sched.Stop()
	a.cancelRebuild()
	if err := a.watcher.Stop(); err != nil {
		a.logger.Error(zerr.Wrap(err, "watcher shutdown failed"))
	}
	if err := a.server.Shutdown(context.WithoutCancel(ctx)); err != nil {
		a.logger.Error(zerr.Wrap(err, "live-update shutdown failed"))
	}
	return nil
}

// buildGraph collects the source files and derives the dependency graph.
func (a *App) buildGraph(ctx context.Context, cfg *domain.Config) (*graph.Graph, error) {
	ctx, span := a.tracer.Start(ctx, "graph rebuild")
	defer span.End()

	sources := a.collectSources(cfg)
	if len(sources) == 0 {
		err := zerr.With(domain.ErrNoSourcesFound, "roots", strings.Join(cfg.Styles.SourceDirs, ","))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("sources", len(sources))

	g := graph.New(cfg.StyleExtensions(), cfg.Styles.IncludePaths, a.logger)
	if err := g.RebuildAll(ctx, sources); err != nil {
		span.RecordError(err)
		return nil, err
	}
	a.tracker.Forget()
	return g, nil
}

// collectSources walks the configured source directories for stylesheet
// files, skipping excluded directories and anything under an output
// directory.
func (a *App) collectSources(cfg *domain.Config) []string {
	skip := cfg.Watch.SkipDirs
	if len(skip) == 0 {
		skip = domain.DefaultSkipDirectories
	}

	var sources []string
	for _, dir := range cfg.Styles.SourceDirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Skip unreadable directories, keep walking.
			}
			if d.IsDir() {
				if slices.Contains(skip, d.Name()) || a.isOutputPath(cfg, path) {
					return fs.SkipDir
				}
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if slices.Contains(cfg.StyleExtensions(), ext) {
				sources = append(sources, path)
			}
			return nil
		})
	}
	return sources
}

// isOutputPath reports whether path lies under a configured output
// directory. Output writes must never feed back into the scheduler.
func (a *App) isOutputPath(cfg *domain.Config, path string) bool {
	for _, out := range []string{cfg.Styles.OutputDir, cfg.Scripts.OutputDir} {
		if out == "" {
			continue
		}
		rel, err := filepath.Rel(out, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// scheduleRebuild arms (or re-arms) the structural rebuild timer.
func (a *App) scheduleRebuild(ctx context.Context, cfg *domain.Config, g *graph.Graph) {
	a.rebuildMu.Lock()
	defer a.rebuildMu.Unlock()

	if a.rebuildTimer != nil {
		a.rebuildTimer.Stop()
	}
	a.rebuildTimer = time.AfterFunc(cfg.DebounceWindow(), func() {
		a.rebuild(ctx, cfg, g)
	})
}

func (a *App) cancelRebuild() {
	a.rebuildMu.Lock()
	defer a.rebuildMu.Unlock()
	if a.rebuildTimer != nil {
		a.rebuildTimer.Stop()
		a.rebuildTimer = nil
	}
}

// rebuild re-derives the graph in place after files were removed or renamed,
// then recompiles every entry.
func (a *App) rebuild(ctx context.Context, cfg *domain.Config, g *graph.Graph) {
	ctx, span := a.tracer.Start(ctx, "structural rebuild")
	defer span.End()

	sources := a.collectSources(cfg)
	if len(sources) == 0 {
		a.logger.Warn("no stylesheet sources remain under the configured roots")
		return
	}
	if err := g.RebuildAll(ctx, sources); err != nil {
		span.RecordError(err)
		a.logger.Error(zerr.Wrap(err, "graph rebuild failed"))
		return
	}
	a.tracker.Forget()

	entries := g.EntryFiles()
	slices.Sort(entries)
	a.compileEntries(ctx, cfg, entries)
}
