package usertests

import (
	"fmt"
	"net/http"
	"time"

	"github.com/usersapi/users-contract-tests/framework"
	"github.com/usersapi/users-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Params are the settings of the suite that are not part of the harness itself.
type Params struct {
	// PageSizes are the values of the size query parameter to try in the list test.
	PageSizes []int

	// MissingUserID is an id that the service has never assigned.
	MissingUserID int64

	// Now returns the current time; if nil, time.Now is used. The date that counts as "today" is
	// always computed in UTC.
	Now func() time.Time
}

type environment struct {
	harness *framework.TestHarness
	params  Params
}

// T represents a test or subtest in the users contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging and deferred cleanup that
// are provided by the lower-level framework package.
//
// It also provides functionality that is specific to the users API: every T has its own REST client
// whose requests and responses go to the test's debug output, and methods for creating fixture users
// that are deleted again when the test ends.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T. The request methods fail the test immediately, as an error rather than a failure, if
// the service can't be reached at all.
type T struct {
	context *framework.Context
	env     *environment
	client  *framework.RESTClient
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{
		context: context,
		env:     env,
		client:  env.harness.NewClient(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules a cleanup action for the end of the test. See framework.Context.Defer.
func (t *T) Defer(action func() error) {
	t.context.Defer(action)
}

func (t *T) Params() Params {
	return t.env.params
}

// Today returns midnight of the current UTC date.
func (t *T) Today() time.Time {
	now := time.Now
	if t.env.params.Now != nil {
		now = t.env.params.Now
	}
	y, m, d := now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (t *T) requireResponse(resp *framework.Response, err error) *framework.Response {
	if err != nil {
		t.context.Fatal(err)
	}
	return resp
}

// ListUsers sends GET /users with the given query parameters.
func (t *T) ListUsers(params servicedef.ListParams) *framework.Response {
	return t.requireResponse(t.client.Get("", params.Query()))
}

// GetUser sends GET /users/{id}.
func (t *T) GetUser(id string) *framework.Response {
	return t.requireResponse(t.client.Get("/"+id, nil))
}

// PostUser sends POST /users.
func (t *T) PostUser(params servicedef.UserParams) *framework.Response {
	return t.requireResponse(t.client.Post("", params))
}

// RequireStatus fails the test immediately unless the response has the expected status.
func (t *T) RequireStatus(resp *framework.Response, expected int) {
	require.Equal(t, expected, resp.StatusCode, "unexpected status for %s; response body: %s",
		resp, string(resp.Body))
}

// RequireUser decodes the body of a GET /users/{id} response.
func (t *T) RequireUser(resp *framework.Response) servicedef.UserRepresentation {
	var user servicedef.UserRepresentation
	require.NoError(t, resp.DecodeJSON(&user))
	return user
}

// CreateUser creates a fixture user, requiring a 201 status and an id in the response. The user
// is deleted when the test ends; if that DELETE does not return 204, the test fails.
func (t *T) CreateUser(params servicedef.UserParams) *framework.RemoteResource {
	resp := t.PostUser(params)
	t.RequireStatus(resp, http.StatusCreated)
	return t.adoptCreatedUser(resp, params)
}

func (t *T) adoptCreatedUser(resp *framework.Response, params servicedef.UserParams) *framework.RemoteResource {
	require.True(t, resp.Get(servicedef.PathID).Exists(), "response to %s had no id: %s", resp, string(resp.Body))
	user, err := t.client.NewRemoteResource(resp, servicedef.PathID,
		fmt.Sprintf("user %s %s", params.FirstName, params.LastName))
	require.NoError(t, err)
	t.Defer(user.Close)
	return user
}

// RequireRejectedUser posts a user that the service must refuse with a 400 status. If the service
// creates it anyway, it is still cleaned up at the end of the test.
func (t *T) RequireRejectedUser(params servicedef.UserParams) {
	resp := t.PostUser(params)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && resp.Get(servicedef.PathID).Exists() {
		t.adoptCreatedUser(resp, params)
	}
	require.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"service should have rejected dayOfBirth %q; response body: %s", params.DayOfBirth, string(resp.Body))
}

// TotalUsers returns the number of users the service reports in its page metadata, if it reports it.
func (t *T) TotalUsers() (int64, bool) {
	resp := t.ListUsers(servicedef.ListParams{Size: ldvalue.NewOptionalInt(1)})
	t.RequireStatus(resp, http.StatusOK)
	total := resp.Get(servicedef.PathPageTotalCount)
	if !total.Exists() {
		return 0, false
	}
	return total.Int(), true
}

// EnsureUserCount creates fixture users until the service has at least n of them. If the service
// does not report a total, nothing is created and the test relies on the data already there.
func (t *T) EnsureUserCount(n int) {
	total, ok := t.TotalUsers()
	if !ok {
		t.Debug("Service did not report %s; assuming at least %d users exist", servicedef.PathPageTotalCount, n)
		return
	}
	if total < int64(n) {
		t.Debug("Service has %d users; creating %d more", total, int64(n)-total)
	}
	for i := total; i < int64(n); i++ {
		t.CreateUser(fillerUser(int(i)))
	}
}
