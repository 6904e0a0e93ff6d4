package usertests

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/usersapi/users-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoGetTests(t *T) {
	t.Run("size of page", func(t *T) {
		for _, size := range t.Params().PageSizes {
			t.Run(fmt.Sprintf("size=%d", size), func(t *T) {
				t.EnsureUserCount(size)

				resp := t.ListUsers(servicedef.ListParams{Size: ldvalue.NewOptionalInt(size)})
				t.RequireStatus(resp, http.StatusOK)

				users := resp.Get(servicedef.PathEmbeddedUsers)
				require.True(t, users.IsArray(), "response had no %s array: %s",
					servicedef.PathEmbeddedUsers, string(resp.Body))
				assert.Len(t, users.Array(), size, "page size should be equal to the size parameter")
			})
		}
	})

	t.Run("uncreated user", func(t *T) {
		resp := t.GetUser(strconv.FormatInt(t.Params().MissingUserID, 10))
		t.RequireStatus(resp, http.StatusNotFound)
	})
}
