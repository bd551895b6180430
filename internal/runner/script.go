package runner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Directive keywords recognized in test files. A keyword may appear
// anywhere in a line (typically after a comment leader such as "//"
// or "#"); everything after it is the payload.
const (
	keywordRun         = "RUN:"
	keywordRequires    = "REQUIRES:"
	keywordUnsupported = "UNSUPPORTED:"
	keywordXFail       = "XFAIL:"
)

// Script is the executable content extracted from one test file.
type Script struct {
	// Commands are the RUN lines in file order, continuations joined,
	// substitutions not yet applied.
	Commands []string

	// Requires lists features that must all be available.
	Requires []string

	// Unsupported lists features any of which gates the test out.
	Unsupported []string

	// XFail lists features under which failure is expected. The
	// wildcard "*" expects failure unconditionally.
	XFail []string
}

// ParseScript extracts directives from a test file.
//
// A RUN payload ending in a backslash is joined with the next RUN
// payload. Feature-list payloads are comma-separated; empty lists are
// rejected as malformed rather than silently ignored.
func ParseScript(path, name string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &RunError{Code: ErrCodeUnreadable, Message: err.Error(), Test: name}
	}
	defer f.Close()

	script := &Script{}
	var pending string // accumulated RUN continuation

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if payload, ok := directivePayload(line, keywordRun); ok {
			if cont, isCont := strings.CutSuffix(payload, "\\"); isCont {
				pending += strings.TrimSpace(cont) + " "
				continue
			}
			script.Commands = append(script.Commands, pending+payload)
			pending = ""
			continue
		}
		if pending != "" {
			// Continuation promised but next line is not a RUN line.
			return nil, &RunError{
				Code:    ErrCodeBadDirective,
				Message: "RUN continuation not followed by a RUN line",
				Test:    name,
			}
		}

		if payload, ok := directivePayload(line, keywordRequires); ok {
			tags, err := featureList(payload, keywordRequires, name)
			if err != nil {
				return nil, err
			}
			script.Requires = append(script.Requires, tags...)
			continue
		}
		if payload, ok := directivePayload(line, keywordUnsupported); ok {
			tags, err := featureList(payload, keywordUnsupported, name)
			if err != nil {
				return nil, err
			}
			script.Unsupported = append(script.Unsupported, tags...)
			continue
		}
		if payload, ok := directivePayload(line, keywordXFail); ok {
			tags, err := featureList(payload, keywordXFail, name)
			if err != nil {
				return nil, err
			}
			script.XFail = append(script.XFail, tags...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &RunError{Code: ErrCodeUnreadable, Message: err.Error(), Test: name}
	}

	if pending != "" {
		return nil, &RunError{
			Code:    ErrCodeBadDirective,
			Message: "RUN continuation at end of file",
			Test:    name,
		}
	}
	if len(script.Commands) == 0 {
		return nil, &RunError{Code: ErrCodeNoRunLines, Message: "no RUN directives in test file", Test: name}
	}

	return script, nil
}

// directivePayload returns the trimmed text after the first occurrence
// of keyword in line.
func directivePayload(line, keyword string) (string, bool) {
	idx := strings.Index(line, keyword)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+len(keyword):]), true
}

// featureList splits a comma-separated directive payload into tags.
func featureList(payload, keyword, test string) ([]string, error) {
	var tags []string
	for _, part := range strings.Split(payload, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil, &RunError{
			Code:    ErrCodeBadDirective,
			Message: fmt.Sprintf("%s directive with empty feature list", strings.TrimSuffix(keyword, ":")),
			Test:    test,
		}
	}
	return tags, nil
}
