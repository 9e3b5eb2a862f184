package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wgips.dev/wgips/internal/config"
	"wgips.dev/wgips/internal/history"
	"wgips.dev/wgips/internal/logging"
	"wgips.dev/wgips/internal/tui"
)

func runUI(ctx context.Context, configPath string, stderr io.Writer) int {
	cfg, _, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	log := openUILogger(configPath)

	store, err := history.Open(ctx, cfg.HistoryDBPath(configPath), cfg.Limit())
	if err != nil {
		// The calculator still works without persistence.
		log.Warn("history store unavailable", logging.F("err", err))
		store = nil
	} else {
		defer store.Close()
	}

	app := tui.New(tui.Options{
		ConfigPath: configPath,
		Config:     cfg,
		Store:      store,
		Log:        log,
	})
	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

// openUILogger logs to a file next to the config: the UI owns the terminal,
// so stderr is not usable while it runs.
func openUILogger(configPath string) *logging.Logger {
	path := filepath.Join(filepath.Dir(configPath), "wgips.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return logging.New(logging.Options{Out: io.Discard})
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return logging.New(logging.Options{Out: io.Discard})
	}
	return logging.New(logging.Options{Out: f}).With(logging.F("surface", "tui"))
}
