package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/config"
	"github.com/funvibe/galaxy/internal/evaluator"
	"github.com/funvibe/galaxy/internal/lexer"
	"github.com/funvibe/galaxy/internal/modulation"
	"github.com/funvibe/galaxy/internal/parser"
	"github.com/funvibe/galaxy/internal/pipeline"
	"github.com/funvibe/galaxy/internal/store"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// options collects the evaluation flags shared by several commands.
type options struct {
	configPath    string
	maxIterations int
	maxDepth      int
	maxNodes      int
	memo          bool
	trace         bool
	record        string
	timeout       time.Duration
	expr          string
}

func (a *app) flagSet(name string, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() { a.usage(a.stderr) }
	fs.StringVar(&opts.configPath, "config", "", "configuration file")
	fs.IntVar(&opts.maxIterations, "max-iterations", 0, "reduction steps per resolution")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "nested resolutions")
	fs.IntVar(&opts.maxNodes, "max-nodes", 0, "list cells forced per evaluation")
	fs.BoolVar(&opts.memo, "memo", false, "cache the value of each variable")
	fs.BoolVar(&opts.trace, "trace", false, "log reduction steps")
	fs.StringVar(&opts.record, "record", "", "SQLite history database")
	fs.DurationVar(&opts.timeout, "timeout", 0, "evaluation time limit")
	return fs
}

// parseFlags parses args and reports the exit code to use when parsing
// stops the command.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	err := fs.Parse(args)
	if err == nil {
		return 0, true
	}
	if errors.Is(err, flag.ErrHelp) {
		return exitOK, false
	}
	return exitUsage, false
}

// resolveConfig loads the configuration named by path, or the nearest
// galaxy.yaml above dir, or the defaults.
func resolveConfig(path, dir string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfig(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

// loadConfig resolves the configuration and applies the flags that were
// set explicitly on the command line.
func loadConfig(fs *flag.FlagSet, opts *options, dir string) (*config.Config, error) {
	cfg, err := resolveConfig(opts.configPath, dir)
	if err != nil {
		return nil, err
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-iterations":
			if opts.maxIterations <= 0 {
				flagErr = fmt.Errorf("-max-iterations must be positive")
			}
			cfg.MaxIterations = opts.maxIterations
		case "max-depth":
			if opts.maxDepth <= 0 {
				flagErr = fmt.Errorf("-max-depth must be positive")
			}
			cfg.MaxDepth = opts.maxDepth
		case "max-nodes":
			if opts.maxNodes <= 0 {
				flagErr = fmt.Errorf("-max-nodes must be positive")
			}
			cfg.MaxNodes = opts.maxNodes
		case "memo":
			cfg.Memoize = opts.memo
		case "trace":
			cfg.Trace = opts.trace
		case "record":
			cfg.Record = opts.record
		case "timeout":
			if opts.timeout < 0 {
				flagErr = fmt.Errorf("-timeout must not be negative")
			}
			cfg.Timeout = opts.timeout.String()
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}
	return cfg, nil
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// program is a source text together with where it came from.
type program struct {
	source string
	path   string // file path, empty for inline programs
	label  string // how the run is recorded: the path, "-e" or "<stdin>"
	dir    string // where to look for galaxy.yaml
}

func (a *app) readProgram(expr string, args []string) (*program, error) {
	cwd, _ := os.Getwd()
	switch {
	case expr != "" && len(args) > 0:
		return nil, fmt.Errorf("pass either -e or a file, not both")
	case expr != "":
		return &program{source: expr, label: "-e", dir: cwd}, nil
	case len(args) != 1:
		return nil, fmt.Errorf("expected exactly one program file")
	case args[0] == "-":
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &program{source: string(data), label: "<stdin>", dir: cwd}, nil
	}

	path := args[0]
	if !isSourceFile(path) {
		return nil, fmt.Errorf("%s: not a program file (want %s)", path, strings.Join(config.SourceFileExtensions, ", "))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &program{source: string(data), path: path, label: path, dir: filepath.Dir(path)}, nil
}

// evaluate runs the lexer, parser and evaluator over src.
func (a *app) evaluate(cfg *config.Config, src, path string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = path
	if d := cfg.TimeoutDuration(); d > 0 {
		c, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		ctx.Context = c
	}

	var trace *log.Logger
	if cfg.Trace {
		trace = log.New(a.stderr, "trace: ", 0)
	}

	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{Config: cfg, Trace: trace},
	).Run(ctx)
}

func (a *app) cmdEval(args []string) int {
	return a.runProgram("galaxy", args, func(v ast.Value) (string, error) {
		return v.Inspect(), nil
	})
}

func (a *app) cmdMod(args []string) int {
	return a.runProgram("mod", args, modulation.EncodeToString)
}

func (a *app) cmdDem(args []string) int {
	if len(args) != 1 {
		return a.usageError("dem: expected one bit string")
	}
	v, err := modulation.DecodeFromString(strings.TrimSpace(args[0]))
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.stdout, v.Inspect())
	return exitOK
}

// runProgram evaluates a program named on the command line and prints the
// rendered result.
func (a *app) runProgram(name string, args []string, render func(ast.Value) (string, error)) int {
	var opts options
	fs := a.flagSet(name, &opts)
	fs.StringVar(&opts.expr, "e", "", "inline program")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	prog, err := a.readProgram(opts.expr, fs.Args())
	if err != nil {
		return a.usageError("%s: %v", name, err)
	}
	cfg, err := loadConfig(fs, &opts, prog.dir)
	if err != nil {
		return a.fail(err)
	}

	started := time.Now()
	ctx := a.evaluate(cfg, prog.source, prog.path)
	elapsed := time.Since(started)

	var out string
	runErr := ctx.Err()
	if runErr == nil {
		out, runErr = render(ctx.Result)
	}
	if cfg.Record != "" {
		a.record(cfg.Record, prog.label, ctx, runErr, started, elapsed)
	}

	if len(ctx.Errors) > 0 {
		for _, diag := range ctx.Errors {
			fmt.Fprintln(a.stderr, a.red(diag.Error()))
		}
		return exitFailure
	}
	if runErr != nil {
		return a.fail(runErr)
	}
	fmt.Fprintln(a.stdout, out)
	return exitOK
}

// record appends the run to the history database. Failures are reported
// but do not change the exit code.
func (a *app) record(dbPath, label string, ctx *pipeline.PipelineContext, runErr error, started time.Time, elapsed time.Duration) {
	bg := context.Background()
	st, err := store.Open(bg, dbPath)
	if err != nil {
		fmt.Fprintf(a.stderr, "warning: history not recorded: %v\n", err)
		return
	}
	defer st.Close()

	target := ""
	if n := len(ctx.Statements); n > 0 {
		target = ctx.Statements[n-1].ID.String()
	}
	run := store.NewRun(label, target, started)
	run.Duration = elapsed
	if ctx.Result != nil {
		run.Result = ctx.Result.Inspect()
		if bits, err := modulation.EncodeToString(ctx.Result); err == nil {
			run.Modulated = bits
		}
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if _, err := st.Record(bg, run); err != nil {
		fmt.Fprintf(a.stderr, "warning: history not recorded: %v\n", err)
	}
}
