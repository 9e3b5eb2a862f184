package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// printResult writes the AllowedIPs line, dimming the label when the writer
// is a terminal so the copyable part stands out. Piped output stays plain.
func printResult(w io.Writer, line string) {
	st := ansiStyle{enabled: wantsColor(w)}

	label, rest, ok := strings.Cut(line, " = ")
	if !ok {
		fmt.Fprintln(w, line)
		return
	}
	fmt.Fprintf(w, "%s = %s\n", st.dim(label), rest)
}

type ansiStyle struct {
	enabled bool
}

func (s ansiStyle) wrap(code, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

func (s ansiStyle) dim(text string) string { return s.wrap("90", text) }

func wantsColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
