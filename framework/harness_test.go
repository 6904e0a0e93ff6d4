package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestHarnessAcceptsHTTPURL(t *testing.T) {
	h, err := NewTestHarness("http://localhost:8080/api/users", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/users", h.ServiceBaseURL())
	assert.Equal(t, "http://localhost:8080/api/users", h.NewClient(nil).BaseURL())
}

func TestNewTestHarnessRejectsBadURLs(t *testing.T) {
	for _, u := range []string{
		"localhost:8080/api/users",
		"ftp://localhost/api/users",
		"http:///api/users",
		"http://localhost/api/users?size=1",
		"http://local host/",
	} {
		t.Run(u, func(t *testing.T) {
			_, err := NewTestHarness(u, nil, nil)
			assert.Error(t, err)
		})
	}
}
