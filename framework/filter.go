package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests the way "go test -run" and "go test -skip" do: each pattern is split
// on slashes, and each element must match the corresponding element of the test ID.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter can be used as a Filter. A group of tests passes MustMatch as long as its own path is
// consistent with a pattern, so that its subtests get a chance to be selected.
func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.anyMatchPrefix(id.Path)) &&
		!r.MustNotMatch.anyMatchAll(id.Path)
}

type RegexList struct {
	patterns []regexPattern
}

type regexPattern struct {
	source   string
	elements []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := regexPattern{source: value}
	for _, element := range strings.Split(value, "/") {
		rx, err := regexp.Compile(element)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) anyMatchPrefix(path []string) bool {
	for _, p := range r.patterns {
		if p.matchElements(path) {
			return true
		}
	}
	return false
}

func (r RegexList) anyMatchAll(path []string) bool {
	for _, p := range r.patterns {
		if len(path) >= len(p.elements) && p.matchElements(path) {
			return true
		}
	}
	return false
}

func (p regexPattern) matchElements(path []string) bool {
	for i := 0; i < len(p.elements) && i < len(path); i++ {
		if !p.elements[i].MatchString(path[i]) {
			return false
		}
	}
	return true
}

// PrintFilterDescription tells the user which tests the filters will leave out, if any.
func PrintFilterDescription(w io.Writer, filters RegexFilters) {
	if !filters.MustMatch.IsDefined() && !filters.MustNotMatch.IsDefined() {
		return
	}
	fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(w)
}
