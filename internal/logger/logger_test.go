package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesDailyJSONFile(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(Options{Dir: dir, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debugw("hello", "k", "v")
	_ = log.Sync()

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"hello"`) || !strings.Contains(string(raw), `"k":"v"`) {
		t.Fatalf("log file missing entry:\n%s", raw)
	}
	if zap.L() == prev {
		t.Fatal("logger not installed globally")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Options{Dir: t.TempDir(), Level: "loud"}); err == nil {
		t.Fatal("bad level accepted")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core).Sugar()

	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Infow("scoped", "id", 7)

	if logs.Len() != 1 || logs.All()[0].Message != "scoped" {
		t.Fatalf("entry not captured: %+v", logs.All())
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("fallback logger is nil")
	}
}
