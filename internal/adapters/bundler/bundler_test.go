package bundler_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ripplebuild/ripple/internal/adapters/bundler"
	"github.com/ripplebuild/ripple/internal/adapters/logger"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundler_Build_MapsOutputs(t *testing.T) {
	b := bundler.NewBundler(logger.New())

	res, err := b.Build(context.Background(), ports.BundleRequest{
		EntryFiles: []string{"src/app.ts", "src/admin.jsx"},
		OutputDir:  "dist",
		Command:    []string{"true"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("dist", "app.js"),
		filepath.Join("dist", "admin.js"),
	}, res.Outputs)
}

func TestBundler_Build_NoEntriesIsNoop(t *testing.T) {
	b := bundler.NewBundler(logger.New())

	res, err := b.Build(context.Background(), ports.BundleRequest{
		OutputDir: "dist",
		Command:   []string{"false"}, // would fail if invoked
	})
	require.NoError(t, err)
	assert.Empty(t, res.Outputs)
}

func TestBundler_Build_Failure(t *testing.T) {
	b := bundler.NewBundler(logger.New())

	_, err := b.Build(context.Background(), ports.BundleRequest{
		EntryFiles: []string{"src/app.ts"},
		OutputDir:  "dist",
		Command:    []string{"false"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrBundleFailed.Error())
}

func TestBundler_Build_NoCommand(t *testing.T) {
	b := bundler.NewBundler(logger.New())

	_, err := b.Build(context.Background(), ports.BundleRequest{
		EntryFiles: []string{"src/app.ts"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBundleFailed)
}
