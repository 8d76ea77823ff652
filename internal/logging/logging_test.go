package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestWithRunIDTagsLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), captureLogger(&buf))
	ctx = WithRunID(ctx, "run-1")

	if got := RunIDFromContext(ctx); got != "run-1" {
		t.Fatalf("expected run-1 got %q", got)
	}

	FromContext(ctx).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry["run_id"] != "run-1" {
		t.Fatalf("expected run_id attribute got %v", entry)
	}
}

func TestStartSpanLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), captureLogger(&buf))

	stageCtx, span := StartSpan(ctx, "scripting")
	if RunIDFromContext(stageCtx) == "" {
		t.Fatal("expected span to assign a run id")
	}
	span.End(errors.New("boom"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry["msg"] != "stage failed" || entry["stage"] != "scripting" || entry["error"] != "boom" {
		t.Fatalf("unexpected log entry %v", entry)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Fatal("expected default logger")
	}
	var nilSpan *Span
	nilSpan.End(nil)
}
