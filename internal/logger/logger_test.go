package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", false)
	if err != nil {
		t.Fatal(err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("op", "edges").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["level"] != "warn" || entry["op"] != "edges" || entry["message"] != "shown" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatal("missing timestamp")
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", true)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("hidden")
	log.Info().Msg("hello")
	if out := buf.String(); !strings.Contains(out, "hello") || strings.Contains(out, "hidden") || strings.HasPrefix(out, "{") {
		t.Fatalf("unexpected console output %q", out)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud", false); err == nil {
		t.Fatal("want error")
	}
}
