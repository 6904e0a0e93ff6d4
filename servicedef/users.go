package servicedef

import (
	"net/url"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DateLayout is the only format accepted for dayOfBirth: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Paths into the JSON representations returned by the users API, in gjson syntax.
const (
	PathID             = "id"
	PathDayOfBirth     = "dayOfBirth"
	PathEmbeddedUsers  = "_embedded.users"
	PathPageTotalCount = "page.totalElements"
)

// UserParams is the request body of POST /users and PUT /users/{id}. It never includes an id.
type UserParams struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	DayOfBirth string `json:"dayOfBirth"`
	Email      string `json:"email"`
}

// UserRepresentation is a single user as returned by GET /users/{id}.
type UserRepresentation struct {
	ID int64 `json:"id"`
	UserParams
}

// ListParams are the query parameters of GET /users. Undefined values are left out of the query.
type ListParams struct {
	Size ldvalue.OptionalInt `json:"size,omitempty"`
	Page ldvalue.OptionalInt `json:"page,omitempty"`
}

func (p ListParams) Query() url.Values {
	q := url.Values{}
	if size, ok := p.Size.Get(); ok {
		q.Set("size", strconv.Itoa(size))
	}
	if page, ok := p.Page.Get(); ok {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}
