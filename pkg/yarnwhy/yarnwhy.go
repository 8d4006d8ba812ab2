package yarnwhy

import "strings"

// Sentinel results. Both are non-fatal: callers fall back to a manual
// decision when they see either one.
const (
	// NoTranscript means no yarn output was available at all (empty input,
	// or the yarn process failed to run).
	NoTranscript = "Unable to determine dependency chain"

	// NoChains means yarn output was present and readable but no chain
	// could be extracted from it.
	NoChains = "Unable to parse yarn output"
)

// Separator joins the chains of an [Explain] result.
const Separator = " | "

// Explain runs the full extraction pipeline over a yarn why transcript and
// returns up to [MaxChains] chains joined with [Separator], or one of the
// two sentinel strings. It is a deterministic function of its inputs and
// safe to call concurrently.
func Explain(transcript, version string) string {
	if strings.TrimSpace(transcript) == "" {
		return NoTranscript
	}
	chains := Chains(transcript, version)
	if len(chains) == 0 {
		return NoChains
	}
	return strings.Join(chains, Separator)
}

// Chains returns the deduplicated dependency chains for the target version,
// in first-seen order, capped at [MaxChains].
func Chains(transcript, version string) []string {
	return Extract(Segment(ParseRecords(transcript), version))
}
