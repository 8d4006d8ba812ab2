package scanner

// Report is the JSON report osv-scanner writes with --format json. Only the
// fields this tool consumes are modeled.
type Report struct {
	Results []Result `json:"results"`
}

// Result groups the findings of one scanned source (a lockfile).
type Result struct {
	Source   Source    `json:"source"`
	Packages []Package `json:"packages"`
}

// Source identifies the scanned file.
type Source struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Package pairs one dependency with the vulnerabilities reported for it.
type Package struct {
	Package         PackageInfo     `json:"package"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	Groups          []Group         `json:"groups"`
}

// PackageInfo identifies a dependency.
type PackageInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Ecosystem string `json:"ecosystem"`
}

// Vulnerability is one OSV advisory.
type Vulnerability struct {
	ID       string     `json:"id"`
	Summary  string     `json:"summary"`
	Details  string     `json:"details"`
	Aliases  []string   `json:"aliases"`
	Severity []Severity `json:"severity"`
}

// Severity is one severity entry of an advisory (e.g. CVSS_V3 + vector).
type Severity struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

// Group clusters aliases of the same underlying vulnerability.
type Group struct {
	IDs         []string `json:"ids"`
	MaxSeverity string   `json:"max_severity"`
}

// Finding is one (package, vulnerability) pair, flattened from the report
// hierarchy for the generate flow.
type Finding struct {
	ID        string
	Aliases   []string
	Summary   string
	Package   string
	Version   string
	Ecosystem string
	Severity  string
}

// Flatten yields one Finding per vulnerability of every package in the
// report, in report order. The severity is the group max when the advisory
// belongs to a group, otherwise the advisory's first severity score.
func (r *Report) Flatten() []Finding {
	var findings []Finding
	for _, res := range r.Results {
		for _, pkg := range res.Packages {
			for _, vuln := range pkg.Vulnerabilities {
				findings = append(findings, Finding{
					ID:        vuln.ID,
					Aliases:   vuln.Aliases,
					Summary:   vuln.Summary,
					Package:   pkg.Package.Name,
					Version:   pkg.Package.Version,
					Ecosystem: pkg.Package.Ecosystem,
					Severity:  severityFor(vuln, pkg.Groups),
				})
			}
		}
	}
	return findings
}

func severityFor(vuln Vulnerability, groups []Group) string {
	for _, g := range groups {
		for _, id := range g.IDs {
			if id == vuln.ID && g.MaxSeverity != "" {
				return g.MaxSeverity
			}
		}
	}
	if len(vuln.Severity) > 0 {
		return vuln.Severity[0].Score
	}
	return ""
}
