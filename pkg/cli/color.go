package cli

import (
	"github.com/mattn/go-isatty"
	"io"
	"os"
)

// colorEnabled reports whether w is a terminal that should get ANSI colours.
func colorEnabled(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *app) red(s string) string {
	if !a.color {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}
