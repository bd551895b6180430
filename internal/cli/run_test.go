package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllPass(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", map[string]string{
		"adder.sc": "// RUN: true\n",
		"mux.sc":   "// RUN: echo ok\n",
	})

	out, err := execute(t, "run", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ adder.sc")
	assert.Contains(t, out, "✓ mux.sc")
	assert.Contains(t, out, "2 passed, 0 failed, 0 skipped, 2 total")
	assert.Contains(t, out, "✓ All tests passed")
}

func TestRun_FailureExitCode(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", map[string]string{
		"bad.sc": "// RUN: false\n",
	})

	out, err := execute(t, "run", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ bad.sc [FAIL]")
}

func TestRun_JSONOutput(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", map[string]string{
		"adder.sc": "// RUN: true\n",
		"bad.sc":   "// RUN: false\n",
	})

	out, err := execute(t, "run", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response struct {
		Status string `json:"status"`
		Data   struct {
			Snapshot json.RawMessage `json:"snapshot"`
		} `json:"data"`
		Error *CLIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_TEST_FAILED", response.Error.Code)

	// The results payload is the canonical snapshot: keys in sorted
	// order, suite and per-test entries included.
	snap := string(response.Data.Snapshot)
	assert.Contains(t, snap, `"CHISEL"`)
	assert.Contains(t, snap, `"bad.sc"`)
	last := -1
	for _, key := range []string{`"failed"`, `"passed"`, `"results"`, `"skipped"`, `"suite"`, `"total"`} {
		idx := strings.Index(snap, key)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", key)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
}

func TestRun_JSONOutputNoTests(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", nil)

	out, err := execute(t, "run", dir, "--format", "json")
	require.NoError(t, err)

	var response struct {
		Status string `json:"status"`
		Data   struct {
			Snapshot json.RawMessage `json:"snapshot"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Contains(t, string(response.Data.Snapshot), `"results": []`)
}

func TestRun_SubstitutionsReachShell(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", map[string]string{
		"subst.sc": "// RUN: test \"%RUNCLASSPATH\" = \"/cp/scala-library.jar\"\n" +
			"// RUN: test \"%JAVAHOME\" = \"/jvm\"\n",
	})

	_, err := execute(t, "run", dir)
	require.NoError(t, err)
}

func TestRun_FeatureGate(t *testing.T) {
	files := map[string]string{
		"scala2only.sc": "// REQUIRES: scala-2\n// RUN: true\n",
	}

	t.Run("scala 2 runs it", func(t *testing.T) {
		dir := newSuiteDir(t, "2.13.12", files)
		out, err := execute(t, "run", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "✓ scala2only.sc")
	})

	t.Run("scala 3 skips it", func(t *testing.T) {
		dir := newSuiteDir(t, "3.3.1", files)
		out, err := execute(t, "run", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "- scala2only.sc (skipped")
	})
}

func TestRun_Filter(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", map[string]string{
		"adder.sc": "// RUN: true\n",
		"mux.sc":   "// RUN: false\n",
	})

	out, err := execute(t, "run", dir, "--filter", "adder")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 0 skipped, 1 total")
}

func TestRun_NoTests(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", nil)

	out, err := execute(t, "run", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No tests found.")
}

func TestRun_MissingDir(t *testing.T) {
	_, err := execute(t, "run", "/nonexistent/tests")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_RecordsToDatabase(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", map[string]string{
		"adder.sc": "// RUN: true\n",
	})
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "run", dir, "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "results", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "CHISEL")
	assert.Contains(t, out, "1 passed, 0 failed, 0 skipped, 1 total")
}

func TestRun_ParallelWorkers(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", map[string]string{
		"a.sc": "// RUN: true\n",
		"b.sc": "// RUN: true\n",
		"c.sc": "// RUN: true\n",
		"d.sc": "// RUN: true\n",
	})

	out, err := execute(t, "run", dir, "-j", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "4 passed, 0 failed, 0 skipped, 4 total")
}
