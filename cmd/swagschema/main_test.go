package main

import (
	"strings"
	"testing"
)

func TestWriteDocument(t *testing.T) {
	doc := map[string]any{"type": "object"}

	var jsonOut strings.Builder
	if err := writeDocument(&jsonOut, doc, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(jsonOut.String(), `"type": "object"`) {
		t.Errorf("json output missing content: %q", jsonOut.String())
	}

	var yamlOut strings.Builder
	if err := writeDocument(&yamlOut, doc, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yamlOut.String(), "type: object") {
		t.Errorf("yaml output missing content: %q", yamlOut.String())
	}

	if err := writeDocument(&jsonOut, doc, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestReadPayload(t *testing.T) {
	if _, err := readPayload(&validateFlags{}); err == nil {
		t.Error("expected error when no payload source is set")
	}
	if _, err := readPayload(&validateFlags{data: "{}", dataFile: "x.json"}); err == nil {
		t.Error("expected error when both payload sources are set")
	}
	got, err := readPayload(&validateFlags{data: `{"a":1}`})
	if err != nil {
		t.Fatalf("inline payload: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("inline payload = %q", got)
	}
}
