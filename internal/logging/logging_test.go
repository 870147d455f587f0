package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandlerHandle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Debug("registry: registered", "kind", "field", "name", "string")

	output := buf.String()
	for _, want := range []string{"DEBUG", "registry: registered", "kind=field", "name=string", now.Format(time.Kitchen)} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got %q", want, output)
		}
	}
	if strings.Contains(output, "\x1b[") {
		t.Fatalf("buffers are not terminals, output should be uncoloured: %q", output)
	}
}

func TestHandlerWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("plugin", "contact").WithGroup("bundle")

	logger.Info("applied", "fields", 2)

	output := buf.String()
	if !strings.Contains(output, "plugin=contact") || !strings.Contains(output, "bundle.fields=2") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestHandlerEnabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be filtered at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should pass at warn level")
	}
	if !NewHandler(&bytes.Buffer{}, nil).Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("default level should be info")
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})
	logger.Info("hello", "k", "v")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "hello" || record["k"] != "v" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	cases := map[int]slog.Level{-1: slog.LevelWarn, 0: slog.LevelWarn, 1: slog.LevelInfo, 2: slog.LevelDebug, 5: slog.LevelDebug}
	for v, want := range cases {
		if got := LevelFromVerbosity(v); got != want {
			t.Fatalf("LevelFromVerbosity(%d) = %v, want %v", v, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected an error for xml")
	}
}

func TestSupportsColorRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if supportsColor(true) {
		t.Fatalf("NO_COLOR should disable colours")
	}
}

func TestNewDiscard(t *testing.T) {
	NewDiscard().Info("dropped")
}
