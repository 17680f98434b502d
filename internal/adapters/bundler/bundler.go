// Package bundler shells out to the external script bundler.
package bundler

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bundler implements ports.ScriptBundler by invoking the configured bundler
// command once per build with all entry files. The output list is derived
// from the entries: one output per entry, renamed to .js under the output
// directory, which is the contract every supported bundler follows.
type Bundler struct {
	logger ports.Logger
}

var _ ports.ScriptBundler = (*Bundler)(nil)

// NewBundler creates a new Bundler.
func NewBundler(logger ports.Logger) *Bundler {
	return &Bundler{logger: logger}
}

// Build runs the external bundler for the given entries.
func (b *Bundler) Build(ctx context.Context, req ports.BundleRequest) (*ports.BundleResult, error) {
	if len(req.Command) == 0 {
		return nil, zerr.With(domain.ErrBundleFailed, "reason", "no bundler command configured")
	}
	if len(req.EntryFiles) == 0 {
		return &ports.BundleResult{}, nil
	}

	args := make([]string, 0, len(req.Command)-1+len(req.EntryFiles)+1)
	args = append(args, req.Command[1:]...)
	args = append(args, req.EntryFiles...)
	args = append(args, "--outdir="+req.OutputDir)

	// #nosec G204 -- the command comes from the project configuration
	cmd := exec.CommandContext(ctx, req.Command[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrBundleFailed.Error())
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "bundler_output", msg)
		}
		return nil, wrapped
	}

	return &ports.BundleResult{
		Outputs: outputsFor(req.EntryFiles, req.OutputDir),
	}, nil
}

// outputsFor maps entry files to their expected bundled outputs.
func outputsFor(entries []string, outputDir string) []string {
	outputs := make([]string, len(entries))
	for i, entry := range entries {
		base := filepath.Base(entry)
		ext := filepath.Ext(base)
		outputs[i] = filepath.Join(outputDir, strings.TrimSuffix(base, ext)+".js")
	}
	return outputs
}
