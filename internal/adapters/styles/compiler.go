// Package styles shells out to the external stylesheet compiler.
package styles

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"go.trai.ch/zerr"
)

// Compiler implements ports.StyleCompiler by invoking the configured
// compiler command with the entry file as its final argument. Include roots
// are passed as --load-path flags, the convention shared by the common
// preprocessor CLIs.
type Compiler struct {
	logger ports.Logger
}

var _ ports.StyleCompiler = (*Compiler)(nil)

// NewCompiler creates a new Compiler.
func NewCompiler(logger ports.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// Compile runs the external compiler and captures stdout as the compiled
// CSS. Stderr is folded into the returned error on failure.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest) (*ports.CompileResult, error) {
	if len(req.Command) == 0 {
		return nil, zerr.With(domain.ErrCompileFailed, "reason", "no compiler command configured")
	}

	args := make([]string, 0, len(req.Command)-1+len(req.IncludeRoots)+1)
	args = append(args, req.Command[1:]...)
	for _, root := range req.IncludeRoots {
		args = append(args, "--load-path="+root)
	}
	args = append(args, req.EntryPath)

	// #nosec G204 -- the command comes from the project configuration
	cmd := exec.CommandContext(ctx, req.Command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrCompileFailed.Error())
		wrapped = zerr.With(wrapped, "entry", req.EntryPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "compiler_output", msg)
		}
		return nil, wrapped
	}

	return &ports.CompileResult{
		CSS: stdout.String(),
	}, nil
}
