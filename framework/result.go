package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type TestStatus int

const (
	StatusPassed TestStatus = iota
	StatusFailed
	StatusErrored
	StatusSkipped
)

func (s TestStatus) String() string {
	switch s {
	case StatusPassed:
		return "PASSED"
	case StatusFailed:
		return "FAILED"
	case StatusErrored:
		return "ERROR"
	case StatusSkipped:
		return "SKIPPED"
	default:
		return fmt.Sprintf("TestStatus(%d)", int(s))
	}
}

func (s TestStatus) colorize(text string) string {
	switch s {
	case StatusPassed:
		return color.GreenString(text)
	case StatusFailed:
		return color.RedString(text)
	case StatusErrored:
		return color.MagentaString(text)
	default:
		return color.YellowString(text)
	}
}

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Errors   []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Status     TestStatus
	Errors     []error
	SkipReason string
}

func (r *Results) add(result TestResult) {
	r.Tests = append(r.Tests, result)
	switch result.Status {
	case StatusFailed:
		r.Failures = append(r.Failures, result)
	case StatusErrored:
		r.Errors = append(r.Errors, result)
	case StatusSkipped:
		r.Skipped = append(r.Skipped, result)
	}
}

// OK is true if no test failed or errored. Skipped tests do not count against the run.
func (r Results) OK() bool {
	return len(r.Failures) == 0 && len(r.Errors) == 0
}

// Passed returns the number of tests that ran and passed.
func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures) - len(r.Errors) - len(r.Skipped)
}

// NotOK returns the IDs of every failed or errored test, in the order they ran.
func (r Results) NotOK() []TestID {
	var ret []TestID
	for _, t := range r.Tests {
		if t.Status == StatusFailed || t.Status == StatusErrored {
			ret = append(ret, t.TestID)
		}
	}
	return ret
}

// PrintResults writes one line per test followed by the totals.
func PrintResults(w io.Writer, results Results) {
	for _, t := range results.Tests {
		fmt.Fprintf(w, "%s %s\n", t.Status.colorize(fmt.Sprintf("%-8s", t.Status)), t.TestID)
	}
	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d passed, %d failed, %d errors, %d skipped",
		results.Passed(), len(results.Failures), len(results.Errors), len(results.Skipped))
	if results.OK() {
		fmt.Fprintln(w, color.GreenString("All tests passed (%s)", summary))
	} else {
		fmt.Fprintln(w, color.RedString("FAILED (%s)", summary))
	}
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
