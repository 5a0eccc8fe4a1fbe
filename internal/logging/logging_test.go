package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatAuto},
		{"auto", FormatAuto},
		{"Console", FormatConsole},
		{"json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	got, err := ParseLevel("WARN")
	if err != nil || got != zapcore.WarnLevel {
		t.Fatalf("ParseLevel(WARN) = %v, %v", got, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNonTerminalDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel(zapcore.InfoLevel), WithFields(zap.String("run", "abc")))
	log.Info("loaded", zap.Int("samples", 42))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "loaded" || entry["run"] != "abc" || entry["samples"] != float64(42) {
		t.Fatalf("entry = %v", entry)
	}
}

func TestDefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf))
	log.Info("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("output = %q", buf.String())
	}

	buf.Reset()
	New(WithOutput(&buf), WithVerbose(true)).Debug("debugging")
	if !strings.Contains(buf.String(), "debugging") {
		t.Fatalf("verbose logger dropped debug entry: %q", buf.String())
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	New(WithOutput(&buf), WithFormat(FormatConsole)).Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "careful") || strings.HasPrefix(out, "{") {
		t.Fatalf("console output = %q", out)
	}
}
