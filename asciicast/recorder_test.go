package asciicast

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRecorderWritesHeaderOnFirstEvent(t *testing.T) {
	var buf bytes.Buffer
	start := time.Unix(1700000000, 0)
	r := New(&buf, 80, 24, start)

	if err := r.Output(start, "hello", 80, 24); err != nil {
		t.Fatalf("Output: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 event line, got %d lines", len(lines))
	}

	var h map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("header not valid JSON: %v", err)
	}
	if h["version"].(float64) != 2 || h["width"].(float64) != 80 {
		t.Fatalf("unexpected header: %v", h)
	}
}

func TestRecorderEventFormat(t *testing.T) {
	var buf bytes.Buffer
	start := time.Unix(1700000000, 0)
	r := New(&buf, 80, 24, start)
	r.Output(start.Add(2*time.Second), "hi", 80, 24)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var event []any
	if err := json.Unmarshal([]byte(lines[1]), &event); err != nil {
		t.Fatalf("event not valid JSON: %v", err)
	}
	if len(event) != 3 {
		t.Fatalf("expected a 3-element event array, got %v", event)
	}
	if event[0].(float64) != 2 {
		t.Fatalf("expected elapsed seconds of 2, got %v", event[0])
	}
	if event[1] != "o" {
		t.Fatalf("expected kind 'o', got %v", event[1])
	}
	if event[2] != "hi" {
		t.Fatalf("expected text 'hi', got %v", event[2])
	}
}

func TestRecorderInputKind(t *testing.T) {
	var buf bytes.Buffer
	start := time.Unix(1700000000, 0)
	r := New(&buf, 80, 24, start)
	r.Input(start, "x", 80, 24)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var event []any
	json.Unmarshal([]byte(lines[1]), &event)
	if event[1] != "i" {
		t.Fatalf("expected kind 'i', got %v", event[1])
	}
}

func TestRecorderRejectsWritesAfterClose(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 80, 24, time.Unix(0, 0))
	r.Close()
	if err := r.Output(time.Unix(1, 0), "x", 80, 24); err == nil {
		t.Fatalf("expected an error writing to a closed recorder")
	}
}

func TestRecorderEscapesSpecialCharacters(t *testing.T) {
	var buf bytes.Buffer
	start := time.Unix(0, 0)
	r := New(&buf, 80, 24, start)
	r.Output(start, "line\nwith\"quotes\"", 80, 24)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var event []any
	if err := json.Unmarshal([]byte(lines[1]), &event); err != nil {
		t.Fatalf("escaped text should still be valid JSON: %v", err)
	}
	if event[2] != "line\nwith\"quotes\"" {
		t.Fatalf("round-tripped text mismatch: %v", event[2])
	}
}
