package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSiteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSite_YAML(t *testing.T) {
	path := writeSiteFile(t, "site.yaml", `
scalaVersion: "2.13.12"
runClasspath:
  - /opt/scala/lib/scala-library.jar
  - /opt/chisel/chisel.jar
scalaPluginJars:
  - /opt/chisel/plugin.jar
javaHome: /usr/lib/jvm/default
javaLibraryPath:
  - /usr/lib/native
`)

	params, err := LoadSite(path)
	require.NoError(t, err)

	assert.Equal(t, "2.13.12", params.ScalaVersion)
	assert.Equal(t, []string{"/opt/scala/lib/scala-library.jar", "/opt/chisel/chisel.jar"}, params.RunClasspath)
	assert.Equal(t, []string{"/opt/chisel/plugin.jar"}, params.ScalaPluginJars)
	assert.Equal(t, "/usr/lib/jvm/default", params.JavaHome)
	assert.Equal(t, ":", params.Separator())
}

func TestLoadSite_YAMLUnknownField(t *testing.T) {
	path := writeSiteFile(t, "site.yaml", `
scalaVerson: "2.13.12"
javaHome: /usr/lib/jvm/default
`)

	_, err := LoadSite(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSiteMalformed, loadErr.Code)
}

func TestLoadSite_CUE(t *testing.T) {
	path := writeSiteFile(t, "site.cue", `
scalaVersion: "3.3.1"
runClasspath: ["/opt/scala3/lib/scala3-library.jar"]
scalaPluginJars: []
javaHome: "/usr/lib/jvm/default"
javaLibraryPath: ["/usr/lib/native"]
pathListSeparator: ";"
`)

	params, err := LoadSite(path)
	require.NoError(t, err)

	assert.Equal(t, "3.3.1", params.ScalaVersion)
	assert.Equal(t, []string{"/opt/scala3/lib/scala3-library.jar"}, params.RunClasspath)
	assert.Empty(t, params.ScalaPluginJars)
	assert.Equal(t, ";", params.Separator())
}

func TestLoadSite_CUEMalformed(t *testing.T) {
	path := writeSiteFile(t, "site.cue", `
scalaVersion: 213
scalaVersion: "2.13"
javaHome: [1, 2
`)

	_, err := LoadSite(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadSite_MissingFile(t *testing.T) {
	_, err := LoadSite("/nonexistent/site.yaml")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSiteNotFound, loadErr.Code)
}

func TestLoadSite_UnknownExtension(t *testing.T) {
	path := writeSiteFile(t, "site.toml", `scalaVersion = "2.13.12"`)

	_, err := LoadSite(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSiteFormat, loadErr.Code)
}

func TestLoadSite_ThenInitialize(t *testing.T) {
	path := writeSiteFile(t, "site.yaml", `
scalaVersion: "2.12.18"
runClasspath: ["/a", "/b"]
scalaPluginJars: []
javaHome: /jvm
javaLibraryPath: []
`)

	params, err := LoadSite(path)
	require.NoError(t, err)

	cfg := Initialize(path, params)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, filepath.Dir(path), cfg.TestSourceRoot)
	assert.Equal(t, "/a:/b", cfg.Substitutions[1].Replacement)
	assert.True(t, cfg.HasFeature("scala-2"))
}
