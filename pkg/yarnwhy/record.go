package yarnwhy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
)

// Kind identifies the shape of a transcript record.
type Kind int

// Record kinds emitted by "yarn why --json".
const (
	// KindUnknown marks a well-formed record whose type is not one this
	// package understands. Unknown records are inert: they never contribute
	// to segmentation or extraction.
	KindUnknown Kind = iota
	KindStep
	KindInfo
	KindList
	KindTree
)

// Record is one parsed transcript line. Kind selects which payload field is
// populated; the others hold their zero value.
type Record struct {
	Kind  Kind
	Step  Step    // KindStep
	Info  string  // KindInfo
	List  List    // KindList
	Trees []*Tree // KindTree
}

// Step is structured progress data. It never contributes to chain
// extraction and is retained only so record handling stays exhaustive.
type Step struct {
	Message string `json:"message"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

// List is an ordered sequence of strings with a sub-kind tag. Only the
// "reasons" sub-kind carries chain information.
type List struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

// Tree is one node of a dependency tree. Children are owned exclusively by
// their parent; yarn output contains no sharing or cycles.
type Tree struct {
	Name     string  `json:"name"`
	Children []*Tree `json:"children"`
}

// envelope is the outer shape of every yarn JSON record.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParseRecords splits transcript into lines and parses each as a yarn JSON
// record. Lines that are not valid JSON, lack a type, or carry a payload
// that does not match their declared type are silently dropped: the
// transcript may interleave unrelated progress noise or come from a yarn
// version with minor format drift.
func ParseRecords(transcript string) []Record {
	var recs []Record

	sc := bufio.NewScanner(strings.NewReader(transcript))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var env envelope
		if err := json.Unmarshal(line, &env); err != nil || env.Type == "" {
			continue
		}
		if rec, ok := decode(env); ok {
			recs = append(recs, rec)
		}
	}
	// Scanner errors only occur for oversized lines; treat them like any
	// other malformed input and return what was parsed so far.
	return recs
}

// decode converts an envelope into a typed Record. It returns false when the
// payload does not match the declared type.
func decode(env envelope) (Record, bool) {
	switch env.Type {
	case "step":
		var s Step
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return Record{}, false
		}
		return Record{Kind: KindStep, Step: s}, true

	case "info":
		var msg string
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return Record{}, false
		}
		return Record{Kind: KindInfo, Info: msg}, true

	case "list":
		var l List
		if err := json.Unmarshal(env.Data, &l); err != nil {
			return Record{}, false
		}
		return Record{Kind: KindList, List: l}, true

	case "tree":
		var t struct {
			Trees []*Tree `json:"trees"`
		}
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return Record{}, false
		}
		return Record{Kind: KindTree, Trees: t.Trees}, true

	default:
		return Record{Kind: KindUnknown}, true
	}
}
