package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-txrecon/common/fixture"
	"github.com/spacemeshos/go-txrecon/log"
	"github.com/spacemeshos/go-txrecon/txfile"
)

func execute(tb testing.TB, fs afero.Fs, args ...string) (string, error) {
	tb.Helper()
	var out bytes.Buffer
	cmd := newCommand(fs, &out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func prepare(tb testing.TB, n int) afero.Fs {
	tb.Helper()
	fs := afero.NewMemMapFs()
	txs := fixture.NewTransactionsGenerator().WithSeed(1).WithScriptSize(10, 40).Generate(n)
	require.NoError(tb, txfile.Save(fs, "/txs", txs))
	return fs
}

func TestBench(t *testing.T) {
	fs := prepare(t, 30)
	out, err := execute(t, fs, "--level", "error", "20", "10", "/txs", "2")
	require.NoError(t, err)
	require.Equal(t, "20, 10, 100\n", out)
}

func TestBenchVerbose(t *testing.T) {
	fs := prepare(t, 10)
	out, err := execute(t, fs, "-v", "--mem", "64KiB", "--level", "error", "5", "5", "/txs", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "Making ib table of 3276 elements", lines[0])
	require.Equal(t, "Read 10 transactions", lines[1])
	require.True(t, strings.HasPrefix(lines[2], ">"))
	require.True(t, strings.HasSuffix(lines[3], "OK"))
	require.Equal(t, "5, 5, 100", lines[4])
}

func TestBenchMetrics(t *testing.T) {
	fs := prepare(t, 4)
	out, err := execute(t, fs, "--metrics", "--level", "error", "2", "2", "/txs", "1")
	require.NoError(t, err)
	require.Contains(t, out, "2, 2, 100\n")
	require.Contains(t, out, "txrecon_bench_runs")
	require.Contains(t, out, "txrecon_peel_decodes")
}

func TestBenchConfigFile(t *testing.T) {
	fs := prepare(t, 10)
	require.NoError(t, afero.WriteFile(fs, "/bench.toml", []byte(`
[main]
verbose = true

[sketch]
mem = "64KiB"
checksum = 4

[logging]
app = "error"
`), 0o600))

	out, err := execute(t, fs, "-c", "/bench.toml", "5", "5", "/txs", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Making ib table of 2728 elements\n")

	// flags win over the file
	out, err = execute(t, fs, "-c", "/bench.toml", "--checksum", "0", "5", "5", "/txs", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Making ib table of 3276 elements\n")
}

func TestBenchPreset(t *testing.T) {
	fs := prepare(t, 4)
	out, err := execute(t, fs, "-p", "tight", "-v", "--level", "error", "2", "2", "/txs", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Making ib table of 3276 elements\n")

	_, err = execute(t, fs, "-p", "nope", "2", "2", "/txs", "1")
	require.ErrorContains(t, err, "preset nope is not registered")
}

func TestBenchErrors(t *testing.T) {
	fs := prepare(t, 4)
	for _, tc := range []struct {
		name string
		args []string
		code string
	}{
		{name: "bad count", args: []string{"x", "1", "/txs", "1"}, code: "ERR_BAD_ARGS"},
		{name: "negative runs", args: []string{"--", "1", "1", "/txs", "-1"}, code: "ERR_BAD_ARGS"},
		{name: "short file", args: []string{"3", "3", "/txs", "1"}, code: "ERR_LOAD_TXS"},
		{name: "missing file", args: []string{"1", "1", "/none", "1"}, code: "ERR_LOAD_TXS"},
		{name: "missing config", args: []string{"-c", "/none.toml", "1", "1", "/txs", "1"}, code: "ERR_MALFORMED_CONFIG"},
		{name: "bad checksum", args: []string{"--checksum", "40", "1", "1", "/txs", "1"}, code: "ERR_BAD_FLAGS"},
		{name: "bad level", args: []string{"--level", "loud", "1", "1", "/txs", "1"}, code: "ERR_BAD_FLAGS"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, fs, tc.args...)
			require.Error(t, err)
			var fatal *log.FatalError
			require.ErrorAs(t, err, &fatal)
			require.Equal(t, tc.code, fatal.Code)
		})
	}

	_, err := execute(t, fs, "1", "1", "/txs")
	require.Error(t, err)

	// without "--" a negative count is taken for a flag
	_, err = execute(t, fs, "1", "1", "/txs", "-1")
	require.ErrorContains(t, err, "unknown shorthand flag")
	var fatal *log.FatalError
	require.False(t, errors.As(err, &fatal))
}

func TestGen(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	cmd := newCommand(fs, &out)
	cmd.SetArgs([]string{"gen", "--seed", "5", "12", "/gen"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "wrote 12 transactions")

	theirs, ours, err := txfile.Load(fs, "/gen", 8, 4)
	require.NoError(t, err)
	require.Len(t, theirs, 8)
	require.Len(t, ours, 4)

	res, err := execute(t, fs, "--level", "error", "8", "4", "/gen", "1")
	require.NoError(t, err)
	require.Equal(t, "8, 4, 100\n", res)
}

func TestBenchMetricsPush(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fs := prepare(t, 4)
	out, err := execute(t, fs, "--metrics-push", srv.URL, "--level", "error", "2", "2", "/txs", "1")
	require.NoError(t, err)
	require.Equal(t, "2, 2, 100\n", out)
	require.Len(t, paths, 1)
	require.True(t, strings.HasPrefix(paths[0], "/metrics/job/ibltbench"), paths[0])
	require.Contains(t, paths[0], "/theirs/2")
}
