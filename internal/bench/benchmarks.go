package bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nsqlite/sqlitebind/internal/bench/benchbar"
	"github.com/nsqlite/sqlitebind/internal/util/numutil"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  uint64
	TotalWrites uint64
}

type benchmark func(r *runner, t target) (benchmarkResult, error)

// benchmarks returns every benchmark in the order they run.
func benchmarks() []benchmark {
	return []benchmark{
		runBenchmarkSimple,
		runBenchmarkTransaction,
		runBenchmarkLarge,
	}
}

// insertUsers inserts count users, each one with its own bound statement.
func (r *runner) insertUsers(t target, count int, email func() string) (uint64, error) {
	var totalWrites uint64

	bar := benchbar.NewBar(
		r.out, fmt.Sprintf("Inserting %s users", numutil.IntWithCommas(count)), count,
	)
	for range count {
		affected, err := t.insertUser(time.Now().Unix(), email(), true)
		if err != nil {
			return 0, fmt.Errorf("error when inserting: %w", err)
		}
		totalWrites += uint64(affected)
		bar.Inc()
	}
	bar.Finish()

	return totalWrites, nil
}

// readUsers queries all users the given number of times.
func (r *runner) readUsers(t target, times int) (uint64, error) {
	var totalReads uint64

	bar := benchbar.NewBar(
		r.out, fmt.Sprintf("Reading all users %s times", numutil.IntWithCommas(times)), times,
	)
	for range times {
		reads, err := t.readUsers()
		if err != nil {
			return 0, fmt.Errorf("error when querying: %w", err)
		}
		totalReads += reads
		bar.Inc()
	}
	bar.Finish()

	return totalReads, nil
}

func randomEmail() string {
	return uuid.NewString() + "@example.com"
}

// runBenchmarkSimple inserts X users, one autocommit statement each, and
// then queries all of them in a single query.
func runBenchmarkSimple(r *runner, t target) (benchmarkResult, error) {
	start := time.Now()

	totalWrites, err := r.insertUsers(t, r.conf.Rows, randomEmail)
	if err != nil {
		return benchmarkResult{}, err
	}

	totalReads, err := r.readUsers(t, 1)
	if err != nil {
		return benchmarkResult{}, err
	}

	return benchmarkResult{
		Name:        "Simple",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}

// runBenchmarkTransaction inserts X users in a single transaction and then
// queries all users 10 times. This simulates a read-heavy workload.
func runBenchmarkTransaction(r *runner, t target) (benchmarkResult, error) {
	start := time.Now()

	if err := t.exec("BEGIN"); err != nil {
		return benchmarkResult{}, err
	}

	totalWrites, err := r.insertUsers(t, r.conf.Rows, randomEmail)
	if err != nil {
		_ = t.exec("ROLLBACK")
		return benchmarkResult{}, err
	}

	if err := t.exec("COMMIT"); err != nil {
		return benchmarkResult{}, err
	}

	totalReads, err := r.readUsers(t, 10)
	if err != nil {
		return benchmarkResult{}, err
	}

	return benchmarkResult{
		Name:        "Transaction",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}

// runBenchmarkLarge inserts X/10 users with Y bytes of content and then
// queries all of them in a single query.
func runBenchmarkLarge(r *runner, t target) (benchmarkResult, error) {
	start := time.Now()

	email := strings.Repeat("Y", r.conf.PayloadBytes)
	count := max(r.conf.Rows/10, 1)

	totalWrites, err := r.insertUsers(t, count, func() string { return email })
	if err != nil {
		return benchmarkResult{}, err
	}

	totalReads, err := r.readUsers(t, 1)
	if err != nil {
		return benchmarkResult{}, err
	}

	return benchmarkResult{
		Name:        "Large",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
