package styles_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/adapters/styles"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiler_Compile_CapturesStdout(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.scss")
	require.NoError(t, os.WriteFile(entry, []byte("body { color: red; }"), 0o644))

	c := styles.NewCompiler(logger.New())

	// "cat" stands in for a compiler: stdout mirrors the entry content.
	res, err := c.Compile(context.Background(), ports.CompileRequest{
		EntryPath: entry,
		Command:   []string{"cat"},
	})
	require.NoError(t, err)
	assert.Equal(t, "body { color: red; }", res.CSS)
}

func TestCompiler_Compile_IncludeRootsBecomeLoadPaths(t *testing.T) {
	c := styles.NewCompiler(logger.New())

	// echo prints its arguments, so the load-path flags are observable.
	res, err := c.Compile(context.Background(), ports.CompileRequest{
		EntryPath:    "main.scss",
		IncludeRoots: []string{"/lib/a", "/lib/b"},
		Command:      []string{"echo"},
	})
	require.NoError(t, err)
	assert.Contains(t, res.CSS, "--load-path=/lib/a")
	assert.Contains(t, res.CSS, "--load-path=/lib/b")
	assert.Contains(t, res.CSS, "main.scss")
}

func TestCompiler_Compile_Failure(t *testing.T) {
	c := styles.NewCompiler(logger.New())

	_, err := c.Compile(context.Background(), ports.CompileRequest{
		EntryPath: "main.scss",
		Command:   []string{"false"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrCompileFailed.Error())
}

func TestCompiler_Compile_NoCommand(t *testing.T) {
	c := styles.NewCompiler(logger.New())

	_, err := c.Compile(context.Background(), ports.CompileRequest{EntryPath: "main.scss"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompileFailed)
}
