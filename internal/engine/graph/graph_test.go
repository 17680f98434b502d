package graph_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"github.com/ripplebuild/ripple/internal/engine/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() ports.Logger {
	l := logger.New()
	l.SetOutput(new(bytes.Buffer))
	return l
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newProject lays out the canonical three-file chain:
// _vars.scss <- _layout.scss <- main.scss.
func newProject(t *testing.T) (string, []string) {
	t.Helper()
	root := t.TempDir()

	vars := filepath.Join(root, "_vars.scss")
	layout := filepath.Join(root, "_layout.scss")
	main := filepath.Join(root, "main.scss")

	writeFile(t, vars, "$tide: #0ea5e9;")
	writeFile(t, layout, `@use "vars";`)
	writeFile(t, main, `@use "layout";`)

	return root, []string{vars, layout, main}
}

func TestGraph_RebuildAll(t *testing.T) {
	root, files := newProject(t)
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())

	require.NoError(t, g.RebuildAll(t.Context(), files))

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{filepath.Join(root, "main.scss")}, g.EntryFiles())
}

func TestGraph_EdgesAreSymmetric(t *testing.T) {
	root, files := newProject(t)
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())
	require.NoError(t, g.RebuildAll(t.Context(), files))

	layout, ok := g.Node(filepath.Join(root, "_layout.scss"))
	require.True(t, ok)
	vars, ok := g.Node(filepath.Join(root, "_vars.scss"))
	require.True(t, ok)
	main, ok := g.Node(filepath.Join(root, "main.scss"))
	require.True(t, ok)

	assert.Contains(t, layout.Uses, vars.Identity)
	assert.Contains(t, vars.UsedBy, layout.Identity)
	assert.Contains(t, main.Uses, layout.Identity)
	assert.Contains(t, layout.UsedBy, main.Identity)

	assert.True(t, vars.IsPartial)
	assert.True(t, layout.IsPartial)
	assert.False(t, main.IsPartial)
}

func TestGraph_RebuildAll_SkipsUnreadableFile(t *testing.T) {
	root, files := newProject(t)
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())

	missing := filepath.Join(root, "gone.scss")
	require.NoError(t, g.RebuildAll(t.Context(), append(files, missing)))

	// The unreadable file is dropped; the rest of the graph builds normally.
	assert.Equal(t, 3, g.Len())
	assert.False(t, g.Contains(missing))
	assert.Equal(t, []string{filepath.Join(root, "main.scss")}, g.EntryFiles())
}

func TestGraph_RebuildAll_DanglingReferenceContinues(t *testing.T) {
	root := t.TempDir()
	main := filepath.Join(root, "main.scss")
	writeFile(t, main, `@use "nonexistent";`)

	logged := new(bytes.Buffer)
	l := logger.New()
	l.SetOutput(logged)

	g := graph.New(domain.DefaultStyleExtensions, nil, l)
	require.NoError(t, g.RebuildAll(t.Context(), []string{main}))

	node, ok := g.Node(main)
	require.True(t, ok)
	assert.Empty(t, node.Uses)

	assert.Contains(t, logged.String(), domain.ErrReferenceNotFound.Error())
	assert.Contains(t, logged.String(), `"nonexistent"`)
}

func TestGraph_RefreshOne_UpdatesEdges(t *testing.T) {
	root, files := newProject(t)
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())
	require.NoError(t, g.RebuildAll(t.Context(), files))

	// main.scss drops layout and picks up vars directly.
	main := filepath.Join(root, "main.scss")
	writeFile(t, main, `@use "vars";`)
	require.NoError(t, g.RefreshOne(main))

	mainNode, ok := g.Node(main)
	require.True(t, ok)
	layout, _ := g.Node(filepath.Join(root, "_layout.scss"))
	vars, _ := g.Node(filepath.Join(root, "_vars.scss"))

	assert.NotContains(t, mainNode.Uses, layout.Identity)
	assert.Contains(t, mainNode.Uses, vars.Identity)
	assert.NotContains(t, layout.UsedBy, mainNode.Identity)
	assert.Contains(t, vars.UsedBy, mainNode.Identity)
}

func TestGraph_RefreshOne_NewFile(t *testing.T) {
	root, files := newProject(t)
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())
	require.NoError(t, g.RebuildAll(t.Context(), files))

	extra := filepath.Join(root, "extra.scss")
	writeFile(t, extra, `@use "vars";`)
	require.NoError(t, g.RefreshOne(extra))

	assert.True(t, g.Contains(extra))
	vars, _ := g.Node(filepath.Join(root, "_vars.scss"))
	extraNode, _ := g.Node(extra)
	assert.Contains(t, vars.UsedBy, extraNode.Identity)
}

func TestGraph_BuiltinModulesIgnored(t *testing.T) {
	root := t.TempDir()
	main := filepath.Join(root, "main.scss")
	writeFile(t, main, "@use \"sass:math\";\nbody { width: math.div(10, 2); }")

	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())
	require.NoError(t, g.RebuildAll(t.Context(), []string{main}))

	node, ok := g.Node(main)
	require.True(t, ok)
	assert.Empty(t, node.Uses)
}

func TestGraph_ResolveReference_ProbeOrder(t *testing.T) {
	root := t.TempDir()
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())

	// Only the partial exists: components/button -> components/_button.scss.
	partial := filepath.Join(root, "components", "_button.scss")
	writeFile(t, partial, "")

	got, ok := g.ResolveReference("components/button", root)
	require.True(t, ok)
	assert.Equal(t, partial, got)

	// Adding the plain file wins over the partial.
	plain := filepath.Join(root, "components", "button.scss")
	writeFile(t, plain, "")

	got, ok = g.ResolveReference("components/button", root)
	require.True(t, ok)
	assert.Equal(t, plain, got)
}

func TestGraph_ResolveReference_DirectoryIndex(t *testing.T) {
	root := t.TempDir()
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())

	index := filepath.Join(root, "theme", "_index.scss")
	writeFile(t, index, "")

	got, ok := g.ResolveReference("theme", root)
	require.True(t, ok)
	assert.Equal(t, index, got)
}

func TestGraph_ResolveReference_ExactExtension(t *testing.T) {
	root := t.TempDir()
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())

	exact := filepath.Join(root, "legacy.sass")
	writeFile(t, exact, "")

	got, ok := g.ResolveReference("legacy.sass", root)
	require.True(t, ok)
	assert.Equal(t, exact, got)
}

func TestGraph_ResolveReference_LibraryRoot(t *testing.T) {
	root := t.TempDir()
	lib := t.TempDir()
	g := graph.New(domain.DefaultStyleExtensions, []string{lib}, quietLogger())

	shared := filepath.Join(lib, "tokens", "_index.scss")
	writeFile(t, shared, "")

	got, ok := g.ResolveReference("tokens", root)
	require.True(t, ok)
	assert.Equal(t, shared, got)

	// Relative references never fall through to library roots.
	_, ok = g.ResolveReference("./tokens", root)
	assert.False(t, ok)
}

func TestGraph_ResolveReference_NotFound(t *testing.T) {
	g := graph.New(domain.DefaultStyleExtensions, nil, quietLogger())

	_, ok := g.ResolveReference("missing", t.TempDir())
	assert.False(t, ok)
}
