package pm

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/errors"
)

// Runner executes an external command and returns its captured stdout.
// The process's working directory is the project directory given at
// construction. An injectable Runner keeps process spawning out of tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Dir is the working directory for every command. Empty means the
	// current directory.
	Dir string
}

// Run executes name with args and returns captured stdout. Stdout is
// returned even when the command exits non-zero, because some tools
// (osv-scanner in particular) report findings through a non-zero exit while
// still writing a full report.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return stdout.String(), ctx.Err()
		}
		return stdout.String(), errors.Wrap(errors.ErrCodeProcess, err, "%s %v: %s", name, args, firstLine(stderr.String()))
	}
	return stdout.String(), nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
