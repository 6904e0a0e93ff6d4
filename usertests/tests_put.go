package usertests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

func DoPutTests(t *T) {
	t.Run("updating resource", func(t *T) {
		user := t.CreateUser(ivanUser())

		replacement := alexeiUser()
		resp := t.requireResponse(user.Put(replacement))
		t.RequireStatus(resp, http.StatusOK)

		resp = t.requireResponse(user.Get())
		t.RequireStatus(resp, http.StatusOK)
		actual := t.RequireUser(resp)

		assert.Equal(t, replacement, actual.UserParams, "every field should have been replaced")
	})
}
