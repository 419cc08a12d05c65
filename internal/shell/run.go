package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqlite/sqlitebind/internal/log"
	"github.com/nsqlite/sqlitebind/internal/shell/config"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
	"github.com/nsqlite/sqlitebind/internal/version"
)

// Run runs the sqlitebind shell.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := sqlitec.Open(conf.Database, openOptions(conf)...)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	if conf.Query != "" {
		return runQuery(os.Stdout, conf, conn)
	}

	fmt.Println(version.ShellVersion(sqlitec.LibVersion()))

	rp := NewRepl(ctx, stop, conf, conn)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}

// openOptions maps the shell configuration to connection options.
func openOptions(conf config.Config) []sqlitec.OpenOption {
	options := []sqlitec.OpenOption{}

	if conf.ReadOnly {
		options = append(options, sqlitec.WithFlags(sqlitec.OpenReadOnly|sqlitec.OpenFullMutex))
	}
	if len(conf.Pragmas) > 0 {
		options = append(options, sqlitec.WithPostOpenQueries(conf.Pragmas))
	}
	if conf.Verbose {
		logger := log.NewDebugLogger(os.Stderr)
		logger.DebugNs(log.NsShell, "verbose logging enabled", log.KV{
			"database": conf.Database,
			"readOnly": conf.ReadOnly,
		})
		options = append(options, sqlitec.WithLogger(logger))
	}

	return options
}

// runQuery executes the one-shot query with its parameters and prints the
// result.
func runQuery(w io.Writer, conf config.Config, conn *sqlitec.Conn) error {
	values, err := ParseParams(conf.Params)
	if err != nil {
		return err
	}

	format := config.OutputTable
	if conf.Format != nil {
		format = *conf.Format
	}

	rs, err := conn.Execute(conf.Query, bindValues(values))
	if err != nil {
		return fmt.Errorf("failed to run query: %w", err)
	}

	return renderResult(w, format, rs, conn)
}
