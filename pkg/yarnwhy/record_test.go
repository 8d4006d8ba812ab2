package yarnwhy

import (
	"strings"
	"testing"
)

func TestParseRecordsKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Kind
	}{
		{"step", `{"type":"step","data":{"message":"Why do we have the module \"package-a\"?","current":1,"total":4}}`, KindStep},
		{"info", `{"type":"info","data":"=> Found \"package-a@1.0.0\""}`, KindInfo},
		{"list", `{"type":"list","data":{"type":"reasons","items":["a","b"]}}`, KindList},
		{"tree", `{"type":"tree","data":{"type":"deps","trees":[{"name":"a"}]}}`, KindTree},
		{"unrecognized type", `{"type":"progressStart","data":{"id":0}}`, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := ParseRecords(tt.line)
			if len(recs) != 1 {
				t.Fatalf("ParseRecords returned %d records, want 1", len(recs))
			}
			if recs[0].Kind != tt.want {
				t.Errorf("Kind = %v, want %v", recs[0].Kind, tt.want)
			}
		})
	}
}

func TestParseRecordsDropsMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not json", `yarn why v1.22.19`},
		{"empty line", ``},
		{"json without type", `{"data":"hello"}`},
		{"json array", `[1,2,3]`},
		{"info with object payload", `{"type":"info","data":{"msg":"nope"}}`},
		{"list with string payload", `{"type":"list","data":"nope"}`},
		{"tree with string payload", `{"type":"tree","data":"nope"}`},
		{"step with string payload", `{"type":"step","data":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if recs := ParseRecords(tt.line); len(recs) != 0 {
				t.Errorf("ParseRecords(%q) kept %d records, want 0", tt.line, len(recs))
			}
		})
	}
}

func TestParseRecordsPayloads(t *testing.T) {
	transcript := strings.Join([]string{
		`{"type":"info","data":"=> Found \"package-a@1.0.0\""}`,
		`{"type":"list","data":{"type":"reasons","items":["one","two"]}}`,
		`{"type":"tree","data":{"trees":[{"name":"root","children":[{"name":"leaf"}]}]}}`,
	}, "\n")

	recs := ParseRecords(transcript)
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}

	if got := recs[0].Info; got != `=> Found "package-a@1.0.0"` {
		t.Errorf("info payload = %q", got)
	}
	if got := recs[1].List; got.Type != "reasons" || len(got.Items) != 2 {
		t.Errorf("list payload = %+v", got)
	}
	tree := recs[2].Trees
	if len(tree) != 1 || tree[0].Name != "root" {
		t.Fatalf("tree payload = %+v", tree)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Name != "leaf" {
		t.Errorf("tree children = %+v", tree[0].Children)
	}
}

func TestParseRecordsInterleavedNoise(t *testing.T) {
	transcript := strings.Join([]string{
		`yarn why v1.22.19`,
		`{"type":"info","data":"=> Found \"package-a@1.0.0\""}`,
		`warning: something unrelated`,
		`{"type":"list","data":{"type":"reasons","items":["one"]}}`,
		`Done in 0.53s.`,
	}, "\n")

	recs := ParseRecords(transcript)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2 (noise lines must be dropped)", len(recs))
	}
}
