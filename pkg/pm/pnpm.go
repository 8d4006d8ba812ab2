package pm

import (
	"context"
	"strings"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/yarnwhy"
)

// Pnpm drives pnpm. Like npm, its "why" output is passed through unparsed.
type Pnpm struct {
	base
}

// NewPnpm creates a pnpm manager for the project at dir.
func NewPnpm(dir string, runner Runner) *Pnpm {
	return &Pnpm{base{dir: dir, runner: runner}}
}

func (p *Pnpm) Name() string     { return "pnpm" }
func (p *Pnpm) Lockfile() string { return "pnpm-lock.yaml" }

func (p *Pnpm) Update(ctx context.Context, pkg string) error {
	_, err := p.runner.Run(ctx, "pnpm", "update", pkg)
	return err
}

// DependencyChain returns the raw pnpm why output for pkg, or the
// no-transcript sentinel when pnpm fails or prints nothing.
func (p *Pnpm) DependencyChain(ctx context.Context, pkg, version string) string {
	out, err := p.runner.Run(ctx, "pnpm", "why", pkg)
	if err != nil {
		return yarnwhy.NoTranscript
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return yarnwhy.NoTranscript
	}
	return out
}
