package pm

import (
	"context"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/yarnwhy"
)

// Yarn drives yarn. It is the only manager whose "why" output gets parsed:
// yarn why --json emits one JSON record per line, which pkg/yarnwhy turns
// into a deduplicated chain list.
type Yarn struct {
	base
}

// NewYarn creates a yarn manager for the project at dir.
func NewYarn(dir string, runner Runner) *Yarn {
	return &Yarn{base{dir: dir, runner: runner}}
}

func (y *Yarn) Name() string     { return "yarn" }
func (y *Yarn) Lockfile() string { return "yarn.lock" }

// Update upgrades pkg within the ranges package.json allows.
func (y *Yarn) Update(ctx context.Context, pkg string) error {
	_, err := y.runner.Run(ctx, "yarn", "upgrade", pkg)
	return err
}

// DependencyChain runs yarn why and extracts chains for the given version.
// A failed or cancelled process yields the no-transcript sentinel; a
// transcript without usable chains yields the unable-to-parse sentinel.
func (y *Yarn) DependencyChain(ctx context.Context, pkg, version string) string {
	out, err := y.runner.Run(ctx, "yarn", "why", "--json", pkg)
	if err != nil {
		return yarnwhy.NoTranscript
	}
	return yarnwhy.Explain(out, version)
}
