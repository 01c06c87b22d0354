package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if parsed["runId"] != "run-1" {
		t.Errorf("runId = %v", parsed["runId"])
	}
	if parsed["needsReview"] != float64(3) {
		t.Errorf("needsReview = %v", parsed["needsReview"])
	}
	if parsed["halted"] != true {
		t.Errorf("halted = %v", parsed["halted"])
	}
	entries, ok := parsed["entries"].([]any)
	if !ok || len(entries) != 2 {
		t.Fatalf("entries = %v", parsed["entries"])
	}
	first := entries[0].(map[string]any)
	if first["outcome"] != "already-requested" || first["url"] != "https://tracker.test/issues/7" {
		t.Errorf("first entry = %v", first)
	}
	counts := parsed["counts"].(map[string]any)
	if counts["creation-failed"] != float64(1) {
		t.Errorf("counts = %v", counts)
	}
	project := parsed["project"].(map[string]any)
	if project["name"] != "Dash" {
		t.Errorf("project = %v", project)
	}
}
