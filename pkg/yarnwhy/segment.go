package yarnwhy

import "strings"

// foundMarker introduces a new per-version block in yarn why output, e.g.
// `=> Found "package-a@1.0.0"`.
const foundMarker = "=> Found"

// segState is the segmenter automaton state.
type segState int

const (
	// stateOutside: the stream is currently in a block for some other
	// version (or no block at all); records are discarded.
	stateOutside segState = iota
	// stateInside: records belong to a block for the target version.
	stateInside
)

// Segment partitions recs into contiguous blocks delimited by "=> Found"
// info records and returns, in encounter order, the records of every block
// whose marker announces the target version. A transcript may contain
// several disjoint occurrences of the same version; all of them are
// retained. Marker records for non-matching versions, and everything up to
// the next marker, are discarded.
//
// The version is matched as the literal substring "@<version>" inside the
// marker message. This can over-match when one version string is a suffix
// of another ("0.6" inside "7.0.6"); see the package design notes.
func Segment(recs []Record, version string) []Record {
	marker := "@" + version

	var (
		state segState
		block []Record
		out   []Record
	)
	flush := func() {
		out = append(out, block...)
		block = nil
	}

	for _, rec := range recs {
		if rec.Kind == KindInfo && strings.Contains(rec.Info, foundMarker) {
			if strings.Contains(rec.Info, marker) {
				if len(block) > 0 {
					flush()
				}
				block = nil
				state = stateInside
			} else {
				if state == stateInside {
					flush()
				}
				block = nil
				state = stateOutside
			}
		}
		// The matching marker record itself is part of its block.
		if state == stateInside {
			block = append(block, rec)
		}
	}

	if state == stateInside && len(block) > 0 {
		flush()
	}
	return out
}
