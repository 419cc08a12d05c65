package bench

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/nsqlite/sqlitebind/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(rows int) (*runner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &runner{
		conf: Config{Rows: rows, PayloadBytes: 64},
		out:  out,
	}, out
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{name: "Valid", cfg: Config{Rows: 10, PayloadBytes: 0}},
		{name: "Zero rows", cfg: Config{Rows: 0}, expectErr: true},
		{name: "Negative payload", cfg: Config{Rows: 1, PayloadBytes: -1}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTargets(t *testing.T) {
	dir := t.TempDir()

	core, err := newCoreTarget(dir, log.Logger{})
	require.NoError(t, err)
	defer core.close()

	mattn, err := newMattnTarget(dir)
	require.NoError(t, err)
	defer mattn.close()

	for _, tgt := range []target{core, mattn} {
		t.Run(tgt.name(), func(t *testing.T) {
			require.NoError(t, recreateSchema(tgt))

			affected, err := tgt.insertUser(time.Now().Unix(), "a@example.com", true)
			require.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			reads, err := tgt.readUsers()
			require.NoError(t, err)
			assert.Equal(t, uint64(1), reads)

			require.NoError(t, recreateSchema(tgt))
			reads, err = tgt.readUsers()
			require.NoError(t, err)
			assert.Equal(t, uint64(0), reads)
		})
	}
}

func TestRunBenchmarks(t *testing.T) {
	r, out := newTestRunner(20)
	logs := &bytes.Buffer{}
	r.logger = log.NewLogger(logs)

	results, err := r.runAll(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Len(t, results, 2)

	for name, res := range results {
		require.Len(t, res, 3, name)

		assert.Equal(t, "Simple", res[0].Name)
		assert.Equal(t, uint64(20), res[0].TotalWrites)
		assert.Equal(t, uint64(20), res[0].TotalReads)

		assert.Equal(t, "Transaction", res[1].Name)
		assert.Equal(t, uint64(20), res[1].TotalWrites)
		assert.Equal(t, uint64(200), res[1].TotalReads)

		assert.Equal(t, "Large", res[2].Name)
		assert.Equal(t, uint64(2), res[2].TotalWrites)
		assert.Equal(t, uint64(2), res[2].TotalReads)
	}

	assert.Contains(t, out.String(), "Benchmarks for sqlitebind/sqlitec")
	assert.Contains(t, out.String(), "Benchmarks for mattn/go-sqlite3")
	assert.Contains(t, logs.String(), `"msg":"benchmark finished"`)
	assert.Contains(t, logs.String(), `"ns":"bench"`)

	comparison := bytes.Buffer{}
	printComparison(&comparison, results)
	assert.Contains(t, comparison.String(), "Speedup")
	assert.Contains(t, comparison.String(), "Transaction")
}

func TestRunBenchmarksCanceled(t *testing.T) {
	r, _ := newTestRunner(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.runAll(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintResults(t *testing.T) {
	out := bytes.Buffer{}
	printResults(&out, []benchmarkResult{
		{Name: "Simple", Duration: time.Second, TotalReads: 12000, TotalWrites: 1500},
	})

	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "Duration")
	assert.Contains(t, out.String(), "12,000")
	assert.Contains(t, out.String(), "1,500")
	assert.Contains(t, out.String(), "1s")
}
