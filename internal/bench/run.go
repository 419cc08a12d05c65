package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/sqlitebind/internal/log"
	"github.com/nsqlite/sqlitebind/internal/shell/styled"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
	"github.com/nsqlite/sqlitebind/internal/util/numutil"
	"github.com/nsqlite/sqlitebind/internal/version"
)

type runner struct {
	conf   Config
	out    io.Writer
	logger log.Logger
}

// Run executes the benchmarks against sqlitec and mattn/go-sqlite3 and
// prints the results.
func Run(ctx context.Context) error {
	conf := MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.BenchVersion(sqlitec.LibVersion()))

	dir := conf.Dir
	if dir == "" {
		tmpDir, err := os.MkdirTemp("", "sqlitebindbench_*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmpDir)
		dir = tmpDir
	}

	r := &runner{conf: conf, out: os.Stdout}
	if conf.Verbose {
		r.logger = log.NewLogger(os.Stderr)
	}

	results, err := r.runAll(ctx, dir)
	if err != nil {
		return err
	}

	fmt.Println()
	printComparison(r.out, results)
	return nil
}

// runAll runs every benchmark against every target. The result keys are
// the target names.
func (r *runner) runAll(ctx context.Context, dir string) (map[string][]benchmarkResult, error) {
	core, err := newCoreTarget(dir, r.logger)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlitec db: %w", err)
	}
	defer core.close()

	mattn, err := newMattnTarget(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening mattn/go-sqlite3 db: %w", err)
	}
	defer mattn.close()

	results := map[string][]benchmarkResult{}
	for _, t := range []target{core, mattn} {
		fmt.Fprintf(r.out, "\n--- Benchmarks for %s ---\n", t.name())

		res, err := r.runBenchmarks(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("error benchmarking %s: %w", t.name(), err)
		}
		printResults(r.out, res)
		results[t.name()] = res
	}

	return results, nil
}

// runBenchmarks executes all benchmarks, and returns results.
//
// It recreates the schema before each benchmark.
func (r *runner) runBenchmarks(ctx context.Context, t target) ([]benchmarkResult, error) {
	var results []benchmarkResult

	for _, bench := range benchmarks() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := recreateSchema(t); err != nil {
			return nil, err
		}

		res, err := bench(r, t)
		if err != nil {
			return nil, err
		}
		results = append(results, res)

		if r.logger.IsInitialized() {
			r.logger.InfoNs(log.NsBench, "benchmark finished", log.KV{
				"target":   t.name(),
				"name":     res.Name,
				"duration": res.Duration.String(),
				"reads":    res.TotalReads,
				"writes":   res.TotalWrites,
			})
		}
	}

	return results, nil
}

func printResults(w io.Writer, results []benchmarkResult) {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Name,
			numutil.IntWithCommas(r.TotalReads),
			numutil.IntWithCommas(r.TotalWrites),
			r.Duration,
		})
	}

	fmt.Fprintln(w, tw.Render())
}

// printComparison prints the duration of each benchmark side by side and
// how many times faster sqlitec was.
func printComparison(w io.Writer, results map[string][]benchmarkResult) {
	coreName := (&coreTarget{}).name()
	mattnName := (&mattnTarget{}).name()

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Name", coreName, mattnName, "Speedup"})

	core := results[coreName]
	mattn := results[mattnName]
	for i := range min(len(core), len(mattn)) {
		speedup := "-"
		if core[i].Duration > 0 {
			speedup = fmt.Sprintf("%.2fx", float64(mattn[i].Duration)/float64(core[i].Duration))
		}
		tw.AppendRow(table.Row{core[i].Name, core[i].Duration, mattn[i].Duration, speedup})
	}

	fmt.Fprintln(w, tw.Render())
}
