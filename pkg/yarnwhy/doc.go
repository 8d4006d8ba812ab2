// Package yarnwhy extracts dependency chains from the JSON-line output of
// "yarn why".
//
// yarn emits one self-describing JSON record per line (steps, info messages,
// reason lists, dependency trees). This package classifies those records,
// keeps the block(s) belonging to a target package version, and extracts a
// deduplicated list of human-readable chains explaining why the package is
// installed.
//
// # Pipeline
//
// The extraction runs as a one-way pipeline:
//
//	transcript text → records → version blocks → raw chains → chain list
//
// Each stage is a pure function: no I/O, no shared state. [Explain] is the
// entry point used by the yarn package-manager adapter; [ParseRecords],
// [Segment] and [Extract] are exported so each stage can be tested in
// isolation.
//
// # Tolerance
//
// Transcripts are noisy: yarn interleaves progress records, format details
// drift between versions, and other tools may write to the same stream.
// Every line or record this package cannot recognize is treated as
// signal-free and skipped. The package never returns an error; the only two
// failure outcomes are the [NoTranscript] and [NoChains] sentinel strings.
package yarnwhy
