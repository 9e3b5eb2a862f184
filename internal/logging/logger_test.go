package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
}

func TestLogger_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(Options{Out: &buf, Now: fixedNow})

	log.Info("saved", F("path", "/tmp/a b"), F("count", 3))

	got := buf.String()
	want := `2025-03-04T05:06:07Z level=info msg="saved" path="/tmp/a b" count=3` + "\n"
	if got != want {
		t.Fatalf("got = %q, want %q", got, want)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(Options{Out: &buf, Level: LevelWarn, Now: fixedNow})

	log.Debug("nope")
	log.Info("nope")
	log.Warn("yes")
	log.Error("also")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2: %q", len(lines), buf.String())
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(Options{Out: &buf, JSON: true, Now: fixedNow})

	log.Error("append failed", F("err", errors.New("disk full")))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if m["level"] != "error" || m["msg"] != "append failed" || m["err"] != "disk full" {
		t.Fatalf("m = %v", m)
	}
}

func TestLogger_WithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(Options{Out: &buf, Now: fixedNow}).With(F("surface", "tui"))

	log.Info("start")

	if !strings.Contains(buf.String(), `surface="tui"`) {
		t.Fatalf("missing base field: %q", buf.String())
	}
}

func TestLogger_NilSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("ignored") // must not panic
	if derived := log.With(F("k", "v")); derived == nil {
		t.Fatalf("With on nil = nil, want usable logger")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{" WARN ", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"", LevelInfo, true},
		{"loud", LevelInfo, false},
	}
	for _, tc := range cases {
		got, ok := ParseLevel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v/%v, want %v/%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
