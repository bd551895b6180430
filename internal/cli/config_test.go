package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Text(t *testing.T) {
	dir := newSuiteDir(t, "2.13.12", nil)

	out, err := execute(t, "config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "suite:    CHISEL")
	assert.Contains(t, out, "format:   shtest (pipefail=true)")
	assert.Contains(t, out, "suffixes: [.sc]")
	assert.Contains(t, out, "%SCALAVERSION")
	assert.Contains(t, out, "%RUNCLASSPATH")
	assert.Contains(t, out, "%SCALAPLUGINJARS")
	assert.Contains(t, out, "%JAVAHOME")
	assert.Contains(t, out, "%JAVALIBRARYPATH")
}

func TestConfig_JSON(t *testing.T) {
	dir := newSuiteDir(t, "3.3.1", nil)

	out, err := execute(t, "config", dir, "--format", "json")
	require.NoError(t, err)

	var response struct {
		Status string     `json:"status"`
		Data   ConfigData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "CHISEL", response.Data.Name)
	assert.Equal(t, []string{".sc"}, response.Data.Suffixes)
	require.Len(t, response.Data.Substitutions, 5)
	assert.Equal(t, "%SCALAVERSION", response.Data.Substitutions[0].Pattern)
	assert.Equal(t, "3.3.1", response.Data.Substitutions[0].Replacement)
	assert.Equal(t, []string{"scala-3"}, response.Data.Features)
	assert.Equal(t, dir, response.Data.Root)
}

func TestConfig_NoSiteFile(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "config", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no site file found")
}
