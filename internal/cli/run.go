// Package cli implements the wgips command line: a calculator command, a
// history log reader, and the launcher for the terminal UI.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"wgips.dev/wgips/internal/config"
)

var version = "dev"

func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("wgips", flag.ContinueOnError)
	global.SetOutput(stderr)

	defaultConfigPath := getenv("WGIPS_CONFIG", config.DefaultPath())
	configPath := global.String("config", defaultConfigPath, "Config file path")
	var help bool
	global.BoolVar(&help, "help", false, "Show help")
	global.BoolVar(&help, "h", false, "Show help")

	global.Usage = func() {
		usage(stderr)
	}

	if err := global.Parse(args); err != nil {
		return 2
	}

	if help {
		usage(stdout)
		return 0
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	switch rest[0] {
	case "help":
		usage(stdout)
		return 0
	case "version":
		fmt.Fprintf(stdout, "wgips version %s\n", version)
		return 0
	case "calc":
		return runCalc(rest[1:], stdout, stderr)
	case "history":
		return runHistory(ctx, rest[1:], *configPath, stdout, stderr)
	case "ui":
		return runUI(ctx, *configPath, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", rest[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: wgips [--config <path>] <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  calc      compute an AllowedIPs line from allowed/disallowed lists")
	fmt.Fprintln(w, "  ui        open the interactive terminal calculator")
	fmt.Fprintln(w, "  history   list or clear the calculation history")
	fmt.Fprintln(w, "  version   print version information")
	fmt.Fprintln(w, "  help      show help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "environment:")
	fmt.Fprintln(w, "  WGIPS_CONFIG   config path override")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "examples:")
	fmt.Fprintln(w, `  wgips calc -a "0.0.0.0/0, ::/0" -d "27.27.27.27, 10.27.0.1"`)
	fmt.Fprintln(w, "  wgips history list --limit 10")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
