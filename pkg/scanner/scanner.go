// Package scanner invokes osv-scanner against a project lockfile and
// decodes its JSON report.
package scanner

import (
	"context"
	"encoding/json"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/errors"
	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/pm"
)

// DefaultBinary is the scanner executable looked up on PATH.
const DefaultBinary = "osv-scanner"

// Scanner runs osv-scanner through a pm.Runner.
type Scanner struct {
	runner pm.Runner
	binary string
}

// New creates a Scanner. An empty binary selects [DefaultBinary].
func New(runner pm.Runner, binary string) *Scanner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Scanner{runner: runner, binary: binary}
}

// Scan runs the scanner against lockfile and decodes the report.
//
// osv-scanner exits 1 when it finds vulnerabilities, so a non-zero exit is
// not by itself a failure: whenever the output decodes as a report, the
// scan counts as successful. An error is returned only when there is no
// usable report (spawn failure, cancelled context, garbage output).
func (s *Scanner) Scan(ctx context.Context, lockfile string) (*Report, error) {
	out, runErr := s.runner.Run(ctx, s.binary, "--format", "json", "-L", lockfile)

	var rep Report
	if err := json.Unmarshal([]byte(out), &rep); err == nil {
		return &rep, nil
	} else if runErr == nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "decode osv-scanner report for %s", lockfile)
	}
	return nil, errors.Wrap(errors.ErrCodeScanner, runErr, "osv-scanner failed for %s", lockfile)
}
