package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG": DEBUG,
		"warn":  WARN,
		" Error": ERROR,
		"":      INFO,
		"loud":  INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, WARN)

	l.Info("hidden")
	l.Warn("shown", F("key", "value"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("INFO entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown | key=value") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestWithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriter(&buf, DEBUG)
	child := base.WithFields(F("component", "timer"))

	child.Info("tick")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "component=timer") {
		t.Fatalf("child fields missing: %q", lines[0])
	}
	if strings.Contains(lines[1], "component=timer") {
		t.Fatalf("fields leaked into parent: %q", lines[1])
	}
}

func TestFileRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flownote.log")
	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 64, MaxAge: 7, MaxBackups: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.Info("a message long enough to push the file over the limit")
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated backup: %v", err)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("nothing")
	if l.WithFields(F("a", 1)) != nil {
		t.Fatal("WithFields on nil logger should return nil")
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}
