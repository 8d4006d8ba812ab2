package scanner

import (
	"context"
	"testing"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/errors"
)

// sampleReport mirrors the shape osv-scanner emits with --format json.
const sampleReport = `{
  "results": [
    {
      "source": {"path": "/project/yarn.lock", "type": "lockfile"},
      "packages": [
        {
          "package": {"name": "minimist", "version": "1.2.5", "ecosystem": "npm"},
          "vulnerabilities": [
            {
              "id": "GHSA-xvch-5gv4-984h",
              "summary": "Prototype Pollution in minimist",
              "aliases": ["CVE-2021-44906"],
              "severity": [{"type": "CVSS_V3", "score": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"}]
            }
          ],
          "groups": [{"ids": ["GHSA-xvch-5gv4-984h"], "max_severity": "9.8"}]
        },
        {
          "package": {"name": "lodash", "version": "4.17.20", "ecosystem": "npm"},
          "vulnerabilities": [
            {"id": "GHSA-35jh-r3h4-6jhm", "summary": "Command Injection in lodash"},
            {"id": "GHSA-29mw-wpgm-hmr9", "summary": "ReDoS in lodash"}
          ]
        }
      ]
    }
  ]
}`

type fakeRunner struct {
	out string
	err error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	return f.out, f.err
}

func TestScanDecodesReport(t *testing.T) {
	s := New(&fakeRunner{out: sampleReport}, "")
	rep, err := s.Scan(context.Background(), "yarn.lock")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	findings := rep.Flatten()
	if len(findings) != 3 {
		t.Fatalf("got %d findings, want 3", len(findings))
	}

	first := findings[0]
	if first.ID != "GHSA-xvch-5gv4-984h" || first.Package != "minimist" || first.Version != "1.2.5" {
		t.Errorf("unexpected first finding: %+v", first)
	}
	if first.Severity != "9.8" {
		t.Errorf("Severity = %q, want group max severity 9.8", first.Severity)
	}
	if len(first.Aliases) != 1 || first.Aliases[0] != "CVE-2021-44906" {
		t.Errorf("Aliases = %v", first.Aliases)
	}

	// Ungrouped advisory without severity entries gets an empty severity.
	if findings[1].Severity != "" {
		t.Errorf("Severity = %q, want empty", findings[1].Severity)
	}
}

func TestScanFindingsExitNotAnError(t *testing.T) {
	// osv-scanner exits 1 when vulnerabilities are found; the runner turns
	// that into an error, but the report is still complete.
	runner := &fakeRunner{
		out: sampleReport,
		err: errors.New(errors.ErrCodeProcess, "osv-scanner: exit status 1"),
	}
	rep, err := New(runner, "").Scan(context.Background(), "yarn.lock")
	if err != nil {
		t.Fatalf("Scan should tolerate exit status 1 with a full report: %v", err)
	}
	if len(rep.Flatten()) == 0 {
		t.Error("report findings lost")
	}
}

func TestScanCleanProject(t *testing.T) {
	rep, err := New(&fakeRunner{out: `{"results":[]}`}, "").Scan(context.Background(), "yarn.lock")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := rep.Flatten(); len(got) != 0 {
		t.Errorf("got %d findings, want 0", len(got))
	}
}

func TestScanFailures(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
		code errors.Code
	}{
		{"spawn failure", "", errors.New(errors.ErrCodeProcess, "executable not found"), errors.ErrCodeScanner},
		{"garbage output", "segfault", nil, errors.ErrCodeInvalidReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&fakeRunner{out: tt.out, err: tt.err}, "").Scan(context.Background(), "yarn.lock")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), tt.code)
			}
		})
	}
}
