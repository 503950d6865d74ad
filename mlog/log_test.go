package mlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var b bytes.Buffer
	Output = &b
	defer func() {
		SetConfig(map[string]slog.Level{"": LevelError})
	}()

	SetConfig(map[string]slog.Level{"": LevelError, "charset": LevelDebug})

	log := New("message", nil)
	log.Debug("hidden")
	log.Info("hidden too")
	if b.Len() != 0 {
		t.Fatalf("got output %q, expected none", b.String())
	}
	log.Errorx("bad part", errors.New("boom"), slog.String("path", "1.2"))
	s := b.String()
	if !strings.Contains(s, "pkg=message") || !strings.Contains(s, "err=boom") || !strings.Contains(s, "path=1.2") || !strings.Contains(s, "level=error") {
		t.Fatalf("unexpected log line %q", s)
	}

	b.Reset()
	clog := New("charset", log.Logger)
	clog.Debug("visible")
	if !strings.Contains(b.String(), "pkg=charset") || strings.Contains(b.String(), "pkg=message") {
		t.Fatalf("unexpected log line %q", b.String())
	}

	b.Reset()
	log.Print("always")
	if !strings.Contains(b.String(), "level=print") {
		t.Fatalf("print not logged: %q", b.String())
	}
}

func TestWithContext(t *testing.T) {
	var b bytes.Buffer
	Output = &b
	defer SetConfig(map[string]slog.Level{"": LevelError})
	SetConfig(map[string]slog.Level{"": LevelInfo})

	ctx := context.WithValue(context.Background(), CidKey, int64(42))
	New("http", nil).WithContext(ctx).Info("request")
	if !strings.Contains(b.String(), "cid=42") {
		t.Fatalf("missing cid in %q", b.String())
	}
}
