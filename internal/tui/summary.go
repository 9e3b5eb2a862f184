package tui

import (
	"fmt"
	"strings"

	"wgips.dev/wgips/internal/history"
)

const summaryMaxLen = 60

// entrySummary renders the one-line history row: timestamp plus both inputs,
// flattened and truncated so long lists stay scannable.
func entrySummary(e history.Entry) string {
	return fmt.Sprintf("[%s]  A: %s | D: %s",
		e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		flatten(e.Allowed, summaryMaxLen),
		flatten(e.Disallowed, summaryMaxLen))
}

func flatten(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
