package usertests

import (
	"net/http"
	"time"

	"github.com/usersapi/users-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoPostTests(t *T) {
	t.Run("dayOfBirth must match format", func(t *T) {
		for _, malformed := range []string{"15-01-2000", "2000/01/15"} {
			t.requireRejectedWithoutSideEffects(withDayOfBirth(ivanUser(), malformed))
		}

		payload := ivanUser()
		user := t.CreateUser(payload)

		resp := t.requireResponse(user.Get())
		t.RequireStatus(resp, http.StatusOK)
		actual := t.RequireUser(resp)

		_, err := time.Parse(servicedef.DateLayout, actual.DayOfBirth)
		assert.NoError(t, err, "dayOfBirth should have the format YYYY-MM-DD")
		assert.Equal(t, payload, actual.UserParams)
	})

	t.Run("dayOfBirth must be earlier than current date", func(t *T) {
		today := t.Today()
		for _, notInPast := range []time.Time{today, today.AddDate(0, 0, 1)} {
			t.requireRejectedWithoutSideEffects(withDayOfBirth(ivanUser(), notInPast.Format(servicedef.DateLayout)))
		}

		user := t.CreateUser(ivanUser())

		resp := t.requireResponse(user.Get())
		t.RequireStatus(resp, http.StatusOK)
		actual := t.RequireUser(resp)

		assert.Less(t, actual.DayOfBirth, today.Format(servicedef.DateLayout))
	})
}

// requireRejectedWithoutSideEffects also checks that the user count did not change, when the
// service reports one.
func (t *T) requireRejectedWithoutSideEffects(params servicedef.UserParams) {
	before, hasTotal := t.TotalUsers()

	t.RequireRejectedUser(params)

	if hasTotal {
		after, _ := t.TotalUsers()
		require.Equal(t, before, after, "rejected request for dayOfBirth %q should not have created a user",
			params.DayOfBirth)
	}
}
