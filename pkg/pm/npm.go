package pm

import (
	"context"
	"strings"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/yarnwhy"
)

// Npm drives npm. npm ls already prints a readable dependency tree, so its
// output is passed through unparsed.
type Npm struct {
	base
}

// NewNpm creates an npm manager for the project at dir.
func NewNpm(dir string, runner Runner) *Npm {
	return &Npm{base{dir: dir, runner: runner}}
}

func (n *Npm) Name() string     { return "npm" }
func (n *Npm) Lockfile() string { return "package-lock.json" }

func (n *Npm) Update(ctx context.Context, pkg string) error {
	_, err := n.runner.Run(ctx, "npm", "update", pkg)
	return err
}

// DependencyChain returns the raw npm ls tree for pkg, or the no-transcript
// sentinel when npm fails or prints nothing.
func (n *Npm) DependencyChain(ctx context.Context, pkg, version string) string {
	out, err := n.runner.Run(ctx, "npm", "ls", pkg)
	if err != nil {
		return yarnwhy.NoTranscript
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return yarnwhy.NoTranscript
	}
	return out
}
