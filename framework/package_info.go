// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of REST contract tests.
//
// The general model is:
//
// 1. The test harness talks to a service under test over HTTP, through a RESTClient that makes
// exactly one attempt per request and reports connection failures as a TransportError.
//
// 2. Tests may create resources in the service (RemoteResource). Each test owns the resources
// it creates and deletes them with a deferred action, which runs whether or not the test passed.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A test that records a TransportError, or panics, is reported as an
// error rather than as a failure.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the request payloads, the expectations about responses, and a domain-specific test API on top
// of the test context.
package framework
