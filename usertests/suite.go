package usertests

import (
	"github.com/usersapi/users-contract-tests/framework"
)

func RunTestSuite(
	harness *framework.TestHarness,
	params Params,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{harness: harness, params: params}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("GET", DoGetTests)
		t.Run("POST", DoPostTests)
		t.Run("PUT", DoPutTests)
		t.Run("DELETE", DoDeleteTests)
	})
}
