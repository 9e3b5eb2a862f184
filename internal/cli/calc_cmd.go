package cli

import (
	"flag"
	"fmt"
	"io"

	"wgips.dev/wgips/internal/ipcalc"
)

func runCalc(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var allowed, disallowed string
	fs.StringVar(&allowed, "a", "", "Allowed IPs/CIDRs (comma- or whitespace-separated)")
	fs.StringVar(&allowed, "allowed", "", "Allowed IPs/CIDRs (comma- or whitespace-separated)")
	fs.StringVar(&disallowed, "d", "", "Disallowed IPs/CIDRs (comma- or whitespace-separated)")
	fs.StringVar(&disallowed, "disallowed", "", "Disallowed IPs/CIDRs (comma- or whitespace-separated)")

	fs.Usage = func() { calcUsage(stderr) }

	if err := parseInterspersedFlags(fs, args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "unexpected argument: %s\n\n", fs.Arg(0))
		calcUsage(stderr)
		return 2
	}

	var allowedSet bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "a" || f.Name == "allowed" {
			allowedSet = true
		}
	})
	if !allowedSet {
		fmt.Fprintln(stderr, "missing required flag: -a/--allowed")
		fmt.Fprintln(stderr, "")
		calcUsage(stderr)
		return 2
	}

	res, err := ipcalc.Calculate(allowed, disallowed)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	printResult(stdout, res.String())
	return 0
}

func calcUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: wgips calc -a/--allowed <list> [-d/--disallowed <list>]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Computes the minimal AllowedIPs line covering the allowed networks")
	fmt.Fprintln(w, "with every disallowed address removed. Lists are comma- and/or")
	fmt.Fprintln(w, "whitespace-separated addresses or CIDR networks; bare addresses mean")
	fmt.Fprintln(w, "/32 (IPv4) or /128 (IPv6).")
}
