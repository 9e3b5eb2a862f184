package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"wgips.dev/wgips/internal/config"
	"wgips.dev/wgips/internal/history"
)

func runHistory(ctx context.Context, args []string, configPath string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		historyUsage(stderr)
		return 2
	}

	cfg, _, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	switch args[0] {
	case "list":
		return runHistoryList(ctx, args[1:], cfg, configPath, stdout, stderr)
	case "clear":
		return runHistoryClear(ctx, cfg, configPath, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown history command: %s\n\n", args[0])
		historyUsage(stderr)
		return 2
	}
}

func runHistoryList(ctx context.Context, args []string, cfg config.File, configPath string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("limit", 20, "Maximum entries to show (0 for all)")
	fs.Usage = func() { historyUsage(stderr) }

	if err := parseInterspersedFlags(fs, args); err != nil {
		return 2
	}

	store, err := history.Open(ctx, cfg.HistoryDBPath(configPath), cfg.Limit())
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer store.Close()

	entries, err := store.Recent(ctx, *limit)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "history is empty")
		return 0
	}

	for _, e := range entries {
		fmt.Fprintf(stdout, "[%s]  A: %s | D: %s\n    %s\n",
			e.CreatedAt.UTC().Format(time.DateTime), e.Allowed, e.Disallowed, e.Result)
	}
	return 0
}

func runHistoryClear(ctx context.Context, cfg config.File, configPath string, stdout, stderr io.Writer) int {
	store, err := history.Open(ctx, cfg.HistoryDBPath(configPath), cfg.Limit())
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer store.Close()

	if err := store.Clear(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	fmt.Fprintln(stdout, "history cleared")
	return 0
}

func historyUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: wgips history <list|clear> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list [--limit N]   show recent calculations, newest first")
	fmt.Fprintln(w, "  clear              delete all recorded calculations")
}
