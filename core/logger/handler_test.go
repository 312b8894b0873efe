package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"log/slog"
)

func newTestHandler(buf *bytes.Buffer, format logFormat) (*structuredHandler, *asyncWriter) {
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	return newStructuredHandler(handlerConfig{
		level:    slog.LevelInfo,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	}), aw
}

func flushLine(t *testing.T, aw *asyncWriter, buf *bytes.Buffer) string {
	t.Helper()
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log line")
	}
	return line
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)
	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	log := slog.New(handler).With("component", "registry")
	LogEvent(ctx, log, slog.LevelInfo, "registry.add",
		slog.String("status", "ok"),
		slog.String("ip", "8.8.8.8"),
	)

	tokens := strings.Split(flushLine(t, aw, buf), " ")
	expected := []string{"ts=", "level=INFO", "component=registry", "event=registry.add", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "ip=8.8.8.8"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%v)", len(tokens), tokens)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatJSON)
	ctx := WithRID(Background(), "rid-json")

	log := slog.New(handler).With("component", "storage")
	LogEvent(ctx, log, slog.LevelError, "storage.save",
		slog.String("status", "error"),
		slog.Any("err", errors.New("disk full")),
		slog.Duration("duration", 1500*time.Microsecond),
	)

	line := flushLine(t, aw, buf)
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"storage"`, `"event":"storage.save"`, `"status":"fail"`, `"rid":"rid-json"`, `"duration_ms":2`, `"err":"disk full"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	rawRID := "123:456:789"
	for _, format := range []logFormat{formatKV, formatJSON} {
		buf := &bytes.Buffer{}
		handler, aw := newTestHandler(buf, format)
		log := slog.New(handler)
		LogEvent(WithRID(Background(), rawRID), log, slog.LevelInfo, "rid.test")
		line := flushLine(t, aw, buf)

		compact := CompactRID(rawRID)
		if compact == rawRID {
			t.Fatal("expected rid to be compacted")
		}
		if !strings.Contains(line, compact) {
			t.Fatalf("%s: expected compact rid, got %s", format, line)
		}
		hasFull := strings.Contains(line, "rid_full")
		if format == formatKV && hasFull {
			t.Fatalf("rid_full should be omitted in KV output, got %s", line)
		}
		if format == formatJSON && !hasFull {
			t.Fatalf("rid_full expected in JSON output, got %s", line)
		}
		if !strings.Contains(line, "component") || !strings.Contains(line, "app") {
			t.Fatalf("expected default component, got %s", line)
		}
	}
}

func TestStructuredHandlerLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)
	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be disabled at info level")
	}
	log := slog.New(handler)
	log.Debug("hidden")
	log.Info("shown")
	line := flushLine(t, aw, buf)
	if strings.Contains(line, "hidden") || !strings.Contains(line, "event=shown") {
		t.Fatalf("unexpected output %q", line)
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("a\x00b\u200bc\td", 10); got != "abc\td" {
		t.Fatalf("sanitize = %q", got)
	}
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("limit = %q", got)
	}
}
