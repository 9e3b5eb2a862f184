package cli

import (
	"flag"
	"strings"
)

// parseInterspersedFlags parses flags even if they appear after positional
// args, which the standard flag.FlagSet.Parse stops scanning at.
func parseInterspersedFlags(fs *flag.FlagSet, args []string) error {
	return fs.Parse(reorderFlags(fs, args))
}

func reorderFlags(fs *flag.FlagSet, args []string) []string {
	var flags []string
	var positionals []string

	for i := 0; i < len(args); i++ {
		a := args[i]

		if a == "--" {
			// Keep the terminator so the parser treats the rest as
			// positional too.
			positionals = append(positionals, args[i:]...)
			break
		}

		if a == "-" || !strings.HasPrefix(a, "-") {
			positionals = append(positionals, a)
			continue
		}

		flags = append(flags, a)

		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}

		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}

		// Known non-bool flag: the next token is its value.
		if i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}

	out := make([]string, 0, len(flags)+len(positionals))
	out = append(out, flags...)
	out = append(out, positionals...)
	return out
}
