package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/funvibe/galaxy/internal/ast"
	"github.com/funvibe/galaxy/internal/config"
	"github.com/funvibe/galaxy/internal/evaluator"
	"github.com/funvibe/galaxy/internal/parser"
	"github.com/peterh/liner"
	"github.com/samber/lo"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	promptMain = "galaxy> "
	replBanner = "galaxy %s. Enter statements (:1 = ap inc 1) or expressions. :env, :reset, :quit."
)

// session is the state of one REPL: the statements entered so far and the
// evaluator limits.
type session struct {
	cfg   *config.Config
	trace *log.Logger
	env   *evaluator.Environment
}

func newSession(cfg *config.Config, trace *log.Logger) *session {
	return &session{cfg: cfg, trace: trace, env: evaluator.NewEnvironment()}
}

// handle processes one input line. It returns the text to print, if any,
// and whether the session should end.
func (s *session) handle(line string) (string, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "//") {
		return "", false, nil
	}

	if strings.HasPrefix(line, ":") && !isVariable(line) {
		switch line {
		case ":quit", ":q":
			return "", true, nil
		case ":reset":
			s.env = evaluator.NewEnvironment()
			return "", false, nil
		case ":env":
			return s.listEnv(), false, nil
		}
		return "", false, fmt.Errorf("unknown command %s; try :env, :reset or :quit", line)
	}

	if strings.Contains(line, "=") {
		stmts, err := parser.Parse(line)
		if err != nil {
			return "", false, err
		}
		for _, stmt := range stmts {
			s.env.Define(stmt)
		}
		return "", false, nil
	}

	body, err := parser.ParseExpression(line)
	if err != nil {
		return "", false, err
	}
	v, err := s.eval(body)
	if err != nil {
		return "", false, err
	}
	return v.Inspect(), false, nil
}

func (s *session) eval(body []ast.Value) (ast.Value, error) {
	ev := evaluator.FromConfig(s.env, s.cfg)
	ev.Trace = s.trace
	if d := s.cfg.TimeoutDuration(); d > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		ev.Context = ctx
	}
	return ev.Eval(body)
}

func (s *session) listEnv() string {
	lines := lo.Map(s.env.Identifiers(), func(id ast.Identifier, _ int) string {
		body, _ := s.env.Lookup(id)
		return ast.Statement{ID: id, Body: body}.String()
	})
	return strings.Join(lines, "\n")
}

// isVariable reports whether line starts with a numbered variable such as
// :1029 rather than a REPL command.
func isVariable(line string) bool {
	return len(line) > 1 && line[1] >= '0' && line[1] <= '9'
}

// complete offers combinator names for the word under the cursor.
func complete(line string) []string {
	start := strings.LastIndexAny(line, " (,") + 1
	prefix := line[start:]
	if prefix == "" {
		return nil
	}
	matches := lo.Filter(ast.Names(), func(name string, _ int) bool {
		return strings.HasPrefix(name, prefix)
	})
	return lo.Map(matches, func(name string, _ int) string {
		return line[:start] + name
	})
}

func (a *app) cmdRepl(args []string) int {
	var opts options
	fs := a.flagSet("repl", &opts)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	cwd, _ := os.Getwd()
	cfg, err := loadConfig(fs, &opts, cwd)
	if err != nil {
		return a.fail(err)
	}

	var trace *log.Logger
	if cfg.Trace {
		trace = log.New(a.stderr, "trace: ", 0)
	}
	s := newSession(cfg, trace)

	fmt.Fprintf(a.stdout, replBanner+"\n", config.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, config.HistoryFileName)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(a.stdout)
			return exitOK
		}
		if err != nil {
			return a.fail(err)
		}

		out, quit, err := s.handle(line)
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if err != nil {
			fmt.Fprintln(a.stderr, a.red(err.Error()))
			continue
		}
		if out != "" {
			fmt.Fprintln(a.stdout, out)
		}
		if quit {
			return exitOK
		}
	}
}
