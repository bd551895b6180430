// Package suite defines the CHISEL test-suite configuration.
//
// A suite binds the generic shell-test runner to one toolchain layout:
// which files are test cases, which placeholder tokens their RUN lines
// may use, and which feature tags they may query.
//
// # Configuration Record
//
// Initialize builds a fresh, immutable Config from the location of the
// suite's configuration artifact plus the toolchain Params supplied by
// a site file:
//
//	name:             "CHISEL"
//	format:           shtest (pipeline failures fail the test)
//	suffixes:         [".sc"]
//	substitutions:    %SCALAVERSION, %RUNCLASSPATH, %SCALAPLUGINJARS,
//	                  %JAVAHOME, %JAVALIBRARYPATH (in that order)
//	test source root: directory containing the artifact
//	features:         "scala-2" or "scala-3"
//
// The record is populated exactly once and only read afterwards. The
// harness owns the returned Config; there is no shared global state.
//
// # Site Files
//
// Toolchain inputs are loaded from a site file in CUE or YAML form,
// selected by extension. See LoadSite.
package suite
