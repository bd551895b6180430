// Package runner executes discovered shell tests.
//
// Each test file is a plain text file whose RUN directives form a
// shell script. The runner extracts the script, renders suite and
// per-test substitutions into each command, and executes the commands
// in order through /bin/sh. With pipefail enabled (the CHISEL
// default), a failure anywhere in a pipeline fails the whole command.
//
// # Directives
//
//	// RUN: scala -cp %RUNCLASSPATH %s
//	// RUN: grep -q "elaborated" %t | head -1
//	// REQUIRES: scala-2
//	// UNSUPPORTED: scala-3
//	// XFAIL: *
//
// A RUN line ending in a backslash continues on the next RUN line.
// REQUIRES skips the test unless every listed feature is available;
// UNSUPPORTED skips it when any listed feature is available; XFAIL
// marks the test as expected to fail ("*" matches unconditionally).
//
// The per-test substitutions %s (source path), %S (source directory),
// %t (per-test temp path) and %% (literal percent) are rendered after
// the suite's token sequence, with %% always last.
package runner
