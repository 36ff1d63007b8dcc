package cli

import (
	"context"
	"flag"
	"fmt"
	"github.com/funvibe/galaxy/internal/store"
	"github.com/samber/lo"
	"os"
	"text/tabwriter"
	"time"
)

func (a *app) cmdHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() { a.usage(a.stderr) }
	dbPath := fs.String("db", "", "SQLite history database")
	limit := fs.Int("n", 20, "number of runs to list")
	configPath := fs.String("config", "", "configuration file")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 0 {
		return a.usageError("history: unexpected argument %q", fs.Arg(0))
	}
	if *limit <= 0 {
		return a.usageError("history: -n must be positive")
	}

	path := *dbPath
	if path == "" {
		cwd, _ := os.Getwd()
		cfg, err := resolveConfig(*configPath, cwd)
		if err != nil {
			return a.fail(err)
		}
		path = cfg.Record
	}
	if path == "" {
		return a.usageError("history: no database; pass -db or set record in galaxy.yaml")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, path)
	if err != nil {
		return a.fail(err)
	}
	defer st.Close()

	runs, err := st.Recent(ctx, *limit)
	if err != nil {
		return a.fail(err)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tSOURCE\tTARGET\tRESULT")
	for _, r := range runs {
		result := r.Result
		if r.Failed() {
			result = "error: " + r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.StartedAt.Format(time.RFC3339),
			r.Duration.Round(time.Microsecond),
			r.Source,
			r.Target,
			lo.Elipse(result, 60),
		)
	}
	if err := tw.Flush(); err != nil {
		return a.fail(err)
	}
	return exitOK
}
