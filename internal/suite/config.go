package suite

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// SuiteName is the fixed human-readable identifier for this suite.
const SuiteName = "CHISEL"

// Placeholder tokens recognized in test command lines.
// The exact spellings are a compatibility contract with existing .sc
// test files and must never change.
const (
	TokenScalaVersion    = "%SCALAVERSION"
	TokenRunClasspath    = "%RUNCLASSPATH"
	TokenScalaPluginJars = "%SCALAPLUGINJARS"
	TokenJavaHome        = "%JAVAHOME"
	TokenJavaLibraryPath = "%JAVALIBRARYPATH"
)

// Feature tags advertised to test files based on the toolchain version.
const (
	FeatureScala2 = "scala-2"
	FeatureScala3 = "scala-3"
)

// FormatShTest identifies the shell-test execution strategy: each test
// file is a sequence of shell commands extracted from RUN directives.
const FormatShTest = "shtest"

// Format selects how the runner executes a discovered test file.
type Format struct {
	// Kind names the execution strategy. Only FormatShTest is defined.
	Kind string `json:"kind"`

	// Pipefail propagates a failure in any command of a pipeline to
	// the whole test, rather than only the last command's status.
	Pipefail bool `json:"pipefail"`
}

// Substitution is one ordered (pattern, replacement) pair applied to a
// test command line before execution.
//
// The sequence is order-sensitive: patterns are applied first to last,
// so an earlier pattern that is a substring of a later one wins. The
// five CHISEL patterns do not overlap, but the ordering guarantee is
// part of the contract regardless.
type Substitution struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// Params are the externally supplied toolchain inputs for the suite.
//
// Params perform no validation of their own. A missing JavaHome or an
// empty classpath is encoded verbatim into the substitutions and only
// surfaces when a test using the corresponding token runs.
type Params struct {
	// ScalaVersion is the toolchain version string, e.g. "2.13.12".
	ScalaVersion string `yaml:"scalaVersion" json:"scalaVersion"`

	// RunClasspath is the ordered runtime classpath.
	RunClasspath []string `yaml:"runClasspath" json:"runClasspath"`

	// ScalaPluginJars is the ordered compiler plugin jar list.
	ScalaPluginJars []string `yaml:"scalaPluginJars" json:"scalaPluginJars"`

	// JavaHome is the toolchain home directory.
	JavaHome string `yaml:"javaHome" json:"javaHome"`

	// JavaLibraryPath is the ordered native-library search path.
	JavaLibraryPath []string `yaml:"javaLibraryPath" json:"javaLibraryPath"`

	// PathListSeparator joins the path lists above. Explicit so the
	// substitution contract is deterministic across platforms; empty
	// defaults to ":".
	PathListSeparator string `yaml:"pathListSeparator,omitempty" json:"pathListSeparator,omitempty"`
}

// Separator returns the effective path-list separator.
func (p Params) Separator() string {
	if p.PathListSeparator == "" {
		return ":"
	}
	return p.PathListSeparator
}

// Config is the suite configuration record.
//
// It is fully populated by Initialize before any test is discovered or
// executed, and is only read afterwards. Exactly one writer exists
// (Initialize); treat the record as immutable once returned.
type Config struct {
	// Name identifies the suite in reports and stored runs.
	Name string `json:"name"`

	// Format is the execution strategy for discovered tests.
	Format Format `json:"format"`

	// Suffixes lists the file extensions recognized as test cases.
	Suffixes []string `json:"suffixes"`

	// Substitutions is the ordered token substitution sequence.
	Substitutions []Substitution `json:"substitutions"`

	// TestSourceRoot is the base directory for test discovery. It is
	// derived from the configuration artifact's own location, so the
	// suite is relocatable regardless of the process working directory.
	TestSourceRoot string `json:"test_source_root"`

	// AvailableFeatures holds the tags test files may query through
	// REQUIRES and UNSUPPORTED directives.
	AvailableFeatures map[string]struct{} `json:"-"`
}

// Initialize constructs the suite configuration record.
//
// artifactPath is the path of the suite's configuration artifact (the
// site file); its containing directory becomes TestSourceRoot. Params
// are rendered into the substitution sequence verbatim, path lists
// joined with the configured separator.
//
// Initialize is idempotent: identical inputs produce equal records.
// It performs no I/O and raises no errors of its own.
func Initialize(artifactPath string, p Params) *Config {
	sep := p.Separator()

	cfg := &Config{
		Name: SuiteName,
		Format: Format{
			Kind:     FormatShTest,
			Pipefail: true,
		},
		Suffixes: []string{".sc"},
		Substitutions: []Substitution{
			{Pattern: TokenScalaVersion, Replacement: p.ScalaVersion},
			{Pattern: TokenRunClasspath, Replacement: strings.Join(p.RunClasspath, sep)},
			{Pattern: TokenScalaPluginJars, Replacement: strings.Join(p.ScalaPluginJars, sep)},
			{Pattern: TokenJavaHome, Replacement: p.JavaHome},
			{Pattern: TokenJavaLibraryPath, Replacement: strings.Join(p.JavaLibraryPath, sep)},
		},
		TestSourceRoot:    filepath.Dir(artifactPath),
		AvailableFeatures: make(map[string]struct{}),
	}

	// Binary branch, not a version parser. Anything that does not
	// start with "2." falls through to scala-3, including unknown
	// future majors. Preserved behavior.
	if strings.HasPrefix(p.ScalaVersion, "2.") {
		cfg.AvailableFeatures[FeatureScala2] = struct{}{}
	} else {
		cfg.AvailableFeatures[FeatureScala3] = struct{}{}
	}

	return cfg
}

// Validate checks structural invariants of the record: every required
// field populated and substitution patterns unique within the sequence.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("suite name is required")
	}
	if c.Format.Kind == "" {
		return fmt.Errorf("execution format is required")
	}
	if len(c.Suffixes) == 0 {
		return fmt.Errorf("at least one test suffix is required")
	}
	if c.TestSourceRoot == "" {
		return fmt.Errorf("test source root is required")
	}

	seen := make(map[string]struct{}, len(c.Substitutions))
	for i, s := range c.Substitutions {
		if s.Pattern == "" {
			return fmt.Errorf("substitutions[%d]: empty pattern", i)
		}
		if _, dup := seen[s.Pattern]; dup {
			return fmt.Errorf("substitutions[%d]: duplicate pattern %q", i, s.Pattern)
		}
		seen[s.Pattern] = struct{}{}
	}

	return nil
}

// Expand applies the substitution sequence to a command line.
// Patterns are applied in declaration order; every occurrence of each
// pattern is replaced.
func (c *Config) Expand(line string) string {
	for _, s := range c.Substitutions {
		line = strings.ReplaceAll(line, s.Pattern, s.Replacement)
	}
	return line
}

// HasFeature reports whether a feature tag is advertised by the suite.
func (c *Config) HasFeature(tag string) bool {
	_, ok := c.AvailableFeatures[tag]
	return ok
}

// Features returns the advertised feature tags in sorted order.
func (c *Config) Features() []string {
	tags := make([]string, 0, len(c.AvailableFeatures))
	for tag := range c.AvailableFeatures {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// MatchesSuffix reports whether a file name carries a recognized test
// suffix. Matching is on the full extension, so "test.scala" does not
// match the ".sc" suffix.
func (c *Config) MatchesSuffix(name string) bool {
	ext := filepath.Ext(name)
	for _, suffix := range c.Suffixes {
		if ext == suffix {
			return true
		}
	}
	return false
}
