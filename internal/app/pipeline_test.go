package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/adapters/telemetry"
	"github.com/ripplebuild/ripple/internal/adapters/watcher"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"github.com/ripplebuild/ripple/internal/core/ports/mocks"
	"github.com/ripplebuild/ripple/internal/engine/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type pipelineFixture struct {
	compiler *mocks.MockStyleCompiler
	bundler  *mocks.MockScriptBundler
	notifier *mocks.MockNotifier
	app      *App
	cfg      *domain.Config
	graph    *graph.Graph
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := logger.New()
	log.SetOutput(new(bytes.Buffer))

	root := t.TempDir()
	write := func(rel, content string) string {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	write("src/_vars.scss", "$tide: #0ea5e9;")
	write("src/main.scss", `@use "vars";`)

	cfg := &domain.Config{
		Root: root,
		Styles: domain.StylesConfig{
			SourceDirs:  []string{filepath.Join(root, "src")},
			OutputDir:   filepath.Join(root, "dist"),
			CompilerCmd: []string{"sass"},
		},
		Scripts: domain.ScriptsConfig{
			Entries:    []string{filepath.Join(root, "src", "app.ts")},
			OutputDir:  filepath.Join(root, "dist"),
			BundlerCmd: []string{"esbuild", "--bundle"},
		},
	}

	f := &pipelineFixture{
		compiler: mocks.NewMockStyleCompiler(ctrl),
		bundler:  mocks.NewMockScriptBundler(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		cfg:      cfg,
	}

	f.graph = graph.New(cfg.StyleExtensions(), nil, log)
	require.NoError(t, f.graph.RebuildAll(t.Context(), []string{
		filepath.Join(root, "src", "_vars.scss"),
		filepath.Join(root, "src", "main.scss"),
	}))

	f.app = New(
		mocks.NewMockConfigLoader(ctrl),
		f.compiler,
		f.bundler,
		nil,
		telemetry.NewOTelTracer("test", telemetry.NewBridge(nil)),
		log,
		watcher.NewContentTracker(),
		f.notifier,
		nil,
	)
	return f
}

func TestHandleChange_PartialRecompilesItsEntry(t *testing.T) {
	f := newPipelineFixture(t)
	vars := filepath.Join(f.cfg.Root, "src", "_vars.scss")

	f.compiler.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CompileRequest) (*ports.CompileResult, error) {
			assert.Equal(t, filepath.Join(f.cfg.Root, "src", "main.scss"), req.EntryPath)
			return &ports.CompileResult{CSS: "body{}"}, nil
		})
	f.notifier.EXPECT().Broadcast(domain.KindStyleUpdate, "main.css")

	f.app.handleChange(t.Context(), f.cfg, f.graph, vars)

	_, err := os.Stat(filepath.Join(f.cfg.Styles.OutputDir, "main.css"))
	assert.NoError(t, err)
}

func TestHandleChange_UnchangedContentIsSkipped(t *testing.T) {
	f := newPipelineFixture(t)
	vars := filepath.Join(f.cfg.Root, "src", "_vars.scss")

	f.compiler.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		Return(&ports.CompileResult{CSS: "body{}"}, nil)
	f.notifier.EXPECT().Broadcast(domain.KindStyleUpdate, "main.css")

	// First change compiles; the second sees identical bytes and is dropped.
	f.app.handleChange(t.Context(), f.cfg, f.graph, vars)
	f.app.handleChange(t.Context(), f.cfg, f.graph, vars)
}

func TestHandleChange_EditedImportsRefreshEdges(t *testing.T) {
	f := newPipelineFixture(t)
	main := filepath.Join(f.cfg.Root, "src", "main.scss")
	vars := filepath.Join(f.cfg.Root, "src", "_vars.scss")

	// main.scss no longer uses vars.
	require.NoError(t, os.WriteFile(main, []byte("body{margin:0}"), 0o644))

	f.compiler.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		Return(&ports.CompileResult{CSS: "body{margin:0}"}, nil).
		Times(2)
	f.notifier.EXPECT().Broadcast(domain.KindStyleUpdate, "main.css")
	f.notifier.EXPECT().Broadcast(domain.KindStyleUpdate, "_vars.css")

	f.app.handleChange(t.Context(), f.cfg, f.graph, main)

	// vars is now an orphan partial; it compiles standalone.
	affected := f.graph.EntryFilesAffectedBy(vars)
	assert.Equal(t, []string{vars}, affected)
	require.NoError(t, os.WriteFile(vars, []byte("$tide: #000;"), 0o644))
	f.app.handleChange(t.Context(), f.cfg, f.graph, vars)
}

func TestHandleChange_ScriptChangeRunsBundler(t *testing.T) {
	f := newPipelineFixture(t)

	f.bundler.EXPECT().
		Build(gomock.Any(), gomock.Any()).
		Return(&ports.BundleResult{Outputs: []string{filepath.Join(f.cfg.Scripts.OutputDir, "app.js")}}, nil)
	f.notifier.EXPECT().Broadcast(domain.KindFullReload, "app.js")

	f.app.handleChange(t.Context(), f.cfg, f.graph, filepath.Join(f.cfg.Root, "src", "app.ts"))
}

func TestHandleChange_OtherAssetBroadcastsFullReload(t *testing.T) {
	f := newPipelineFixture(t)

	asset := filepath.Join(f.cfg.Styles.OutputDir, "logo.png")
	f.notifier.EXPECT().Broadcast(domain.KindFullReload, "logo.png")

	f.app.handleChange(t.Context(), f.cfg, f.graph, asset)
}

func TestHandleChange_SourceMapIsSuppressed(t *testing.T) {
	f := newPipelineFixture(t)

	// No Broadcast expectation: a map file never produces one.
	f.app.handleChange(t.Context(), f.cfg, f.graph, filepath.Join(f.cfg.Styles.OutputDir, "main.css.map"))
}

func TestOutputPathFor(t *testing.T) {
	f := newPipelineFixture(t)

	got := f.app.outputPathFor(f.cfg, filepath.Join("src", "pages", "about.scss"))
	assert.Equal(t, filepath.Join(f.cfg.Styles.OutputDir, "about.css"), got)
}

func TestFallbackCSS_EscapesCommentTerminator(t *testing.T) {
	out := fallbackCSS("main.scss", errors.New("bad */ sequence"))

	assert.True(t, strings.HasPrefix(out, "/* compilation failed: main.scss"))
	assert.True(t, strings.HasSuffix(out, "*/\n"))
	// The error's own comment terminator must not close the comment early.
	assert.Equal(t, 1, strings.Count(out, "*/"))
}
