package tui

import (
	"strings"
	"testing"
	"time"

	"wgips.dev/wgips/internal/history"
)

func TestEntrySummary(t *testing.T) {
	t.Parallel()

	e := history.Entry{
		CreatedAt:  time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC),
		Allowed:    "10.0.0.0/24\n10.0.1.0/24",
		Disallowed: "10.0.0.128/25",
	}

	got := entrySummary(e)
	want := "[2025-06-07 08:09:10]  A: 10.0.0.0/24 10.0.1.0/24 | D: 10.0.0.128/25"
	if got != want {
		t.Fatalf("got = %q, want %q", got, want)
	}
}

func TestFlattenTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("10.0.0.0/24 ", 20)
	got := flatten(long, 60)
	if len(got) != 63 || !strings.HasSuffix(got, "...") {
		t.Fatalf("got = %q (len %d)", got, len(got))
	}
}

func TestFlattenShortUnchanged(t *testing.T) {
	t.Parallel()

	if got := flatten("  10.0.0.1 ", 60); got != "10.0.0.1" {
		t.Fatalf("got = %q", got)
	}
}
