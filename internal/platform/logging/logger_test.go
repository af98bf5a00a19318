package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return out
}

func TestLoggerWritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, Service: "booze-baton"})

	logger.Info("baton resolved", "status", "moved", "match_id", 999, "error", errors.New("boom"))

	line := decodeLine(t, &buf)
	want := map[string]any{
		"msg":     "baton resolved",
		"level":   "INFO",
		"service": "booze-baton",
		"status":  "moved",
		"error":   "boom",
	}
	for key, value := range want {
		if line[key] != value {
			t.Fatalf("unexpected %s: got=%v want=%v", key, line[key], value)
		}
	}
	if id, ok := line["match_id"].(float64); !ok || id != 999 {
		t.Fatalf("unexpected match_id: %v", line["match_id"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be dropped, got %q", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatalf("expected warn to be written")
	}
}

func TestLoggerContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "with trace")

	line := decodeLine(t, &buf)
	if line["trace_id"] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Fatalf("unexpected trace_id: %v", line["trace_id"])
	}
	if line["span_id"] != "00f067aa0ba902b7" {
		t.Fatalf("unexpected span_id: %v", line["span_id"])
	}
}

func TestLoggerOddArgsAndNil(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf}).With("component", "test")

	logger.Info("odd", "dangling")

	line := decodeLine(t, &buf)
	if line["component"] != "test" {
		t.Fatalf("unexpected component: %v", line["component"])
	}
	if _, ok := line["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", line)
	}

	var nilLogger *Logger
	nilLogger.Info("no-op")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, "": LevelInfo, "WARNING": LevelWarn, "error": LevelError}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%t want=%v", raw, got, ok, want)
		}
	}
	if _, ok := ParseLevel("verbose"); ok {
		t.Fatalf("expected verbose to be rejected")
	}
}
