package cli

import (
	"fmt"
	"github.com/funvibe/galaxy/internal/config"
	"io"
	"os"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// app carries the standard streams so commands can be driven from tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  bool
}

// Run is the galaxy binary entry point.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(exitFailure)
		}
	}()

	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Main dispatches a command line and returns the process exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, color: colorEnabled(stderr)}

	if len(args) == 0 {
		a.usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "-v", "-version", "--version", "version":
		fmt.Fprintln(stdout, "galaxy "+config.Version)
		return exitOK
	case "-h", "-help", "--help", "help":
		a.usage(stdout)
		return exitOK
	case "mod":
		return a.cmdMod(args[1:])
	case "dem":
		return a.cmdDem(args[1:])
	case "repl":
		return a.cmdRepl(args[1:])
	case "history":
		return a.cmdHistory(args[1:])
	}
	return a.cmdEval(args)
}

func (a *app) usage(w io.Writer) {
	fmt.Fprintf(w, `galaxy %s

Usage:
  galaxy [flags] <file>             Evaluate the last statement of a program.
  galaxy [flags] -e <program>       Evaluate an inline program.
  galaxy mod [flags] <file>         Print the modulated result.
  galaxy dem <bits>                 Demodulate a bit string.
  galaxy repl [flags]               Start the interactive evaluator.
  galaxy history [-db path] [-n N]  List recorded evaluations.

Flags:
  -config path        configuration file (default: galaxy.yaml, searched upwards)
  -max-iterations n   reduction steps per resolution (default %d)
  -max-depth n        nested resolutions (default %d)
  -max-nodes n        list cells forced per evaluation (default %d)
  -memo               cache the value of each variable
  -trace              log reduction steps to stderr
  -record path        append the run to a SQLite history database
  -timeout d          abort evaluation after d, e.g. 30s
`, config.Version, config.DefaultMaxIterations, config.DefaultMaxDepth, config.DefaultMaxNodes)
}

// fail prints err to stderr and returns the failure exit code.
func (a *app) fail(err error) int {
	fmt.Fprintln(a.stderr, a.red(err.Error()))
	return exitFailure
}

// usageError prints a message and the usage text.
func (a *app) usageError(format string, args ...interface{}) int {
	fmt.Fprintln(a.stderr, a.red(fmt.Sprintf(format, args...)))
	a.usage(a.stderr)
	return exitUsage
}
