package usertests

import (
	"net/http"
)

func DoDeleteTests(t *T) {
	t.Run("deleting created user", func(t *T) {
		user := t.CreateUser(ivanUser())

		resp := t.requireResponse(user.Delete())
		t.RequireStatus(resp, http.StatusNoContent)

		resp = t.requireResponse(user.Get())
		t.RequireStatus(resp, http.StatusNotFound)
	})
}
