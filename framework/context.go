package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the framework's equivalent of *testing.T for a single test or group of tests.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	errored     bool
	skipped     bool
	skipReason  string
	hasChildren bool
	errors      []error
	deferred    []func() error
}

// Run runs a test suite. The action receives the root Context, which normally does nothing but
// call Run for each top-level group of tests.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	if c.failed || c.errored {
		env.results.add(c.result())
	}
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		c.recoverFrom(recover())
		c.runDeferred()
	}()

	action(c)
}

func (c *Context) recoverFrom(r interface{}) {
	if r == nil || c.skipped {
		return
	}
	if _, ok := r.(*Context); ok {
		if len(c.errors) == 0 {
			c.addError(errors.New("test failed with no failure message"))
		}
		return
	}
	c.errored = true
	err := fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		last := len(c.deferred) - 1
		fn := c.deferred[last]
		c.deferred = c.deferred[:last]
		c.runDeferredAction(fn)
	}
}

func (c *Context) runDeferredAction(fn func() error) {
	wasSkipped := c.skipped
	c.skipped = false
	defer func() {
		c.recoverFrom(recover())
		c.skipped = c.skipped || wasSkipped
	}()
	if err := fn(); err != nil {
		c.addError(err)
	}
}

func (c *Context) status() TestStatus {
	switch {
	case c.errored:
		return StatusErrored
	case c.failed:
		return StatusFailed
	case c.skipped:
		return StatusSkipped
	default:
		return StatusPassed
	}
}

func (c *Context) result() TestResult {
	return TestResult{
		TestID:     c.id,
		Status:     c.status(),
		Errors:     c.errors,
		SkipReason: c.skipReason,
	}
}

// ID returns the full identifier of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. A test that has subtests is treated as a group: it only gets its own
// entry in the results if something outside of its subtests went wrong.
func (c *Context) Run(name string, action func(*Context)) {
	c.hasChildren = true
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		reason := "excluded by filter parameters"
		c.env.testLogger.TestSkipped(id, reason)
		c.env.results.add(TestResult{TestID: id, Status: StatusSkipped, SkipReason: reason})
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)

	status := c1.status()
	if !c1.hasChildren || status == StatusFailed || status == StatusErrored {
		c.env.results.add(c1.result())
	}
	if status == StatusSkipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, status, c1.debugLogger.Output())
	}
}

// Errorf records a test failure without stopping the test. It is called by assertions in the
// testify assert package.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.addError(fmt.Errorf(format, args...))
}

// Error records an error without stopping the test. If the error is, or wraps, a
// *TransportError, the test is reported as errored rather than failed.
func (c *Context) Error(err error) {
	c.addError(err)
}

// Fatal is equivalent to Error followed by FailNow.
func (c *Context) Fatal(err error) {
	c.addError(err)
	c.FailNow()
}

func (c *Context) addError(err error) {
	var te *TransportError
	if errors.As(err, &te) {
		c.errored = true
	} else {
		c.failed = true
	}
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow stops the test immediately. Deferred actions still run.
func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules an action to run when the test ends, whether it passed, failed, or stopped
// early. Actions run in reverse order of registration. A non-nil error is recorded against the
// test in addition to any failures from the test body.
func (c *Context) Defer(action func() error) {
	c.deferred = append(c.deferred, action)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// testify formats its messages for go test output, starting with a newline and indenting every
// line with tabs; we print them under a test ID of our own, so the leading whitespace is dropped.
func reformatError(err error) error {
	var lines []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimLeft(line, "\t ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return errors.New(strings.Join(lines, "\n"))
}
