package framework

import (
	"fmt"
	"net/http"
	"net/url"
)

// RemoteResource represents something that a test asked the service under test to create, and
// that the test is responsible for deleting again. Normally the test registers Close with
// Context.Defer as soon as the resource exists.
type RemoteResource struct {
	client      *RESTClient
	id          string
	url         string
	description string
	deleted     bool

	// ExpectedDeleteStatus is the status that DELETE must return for the resource to count as
	// deleted. It defaults to 204.
	ExpectedDeleteStatus int
}

// NewRemoteResource identifies the resource created by a POST request. The resource ID is taken
// from idPath in the response body (a gjson path); if there is no such value, the Location
// header is used as the resource URL instead.
func (c *RESTClient) NewRemoteResource(created *Response, idPath, description string) (*RemoteResource, error) {
	r := &RemoteResource{
		client:               c,
		description:          description,
		ExpectedDeleteStatus: http.StatusNoContent,
	}
	var idValue string
	if idPath != "" {
		idValue = created.Get(idPath).String()
	}
	if idValue != "" {
		r.id = idValue
		r.url = c.resolve("/"+r.id, nil)
	} else if location := created.Header.Get("Location"); location != "" {
		base, err := url.Parse(c.baseURL)
		if err != nil {
			return nil, err
		}
		ref, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("malformed Location header in response to %s: %w", created, err)
		}
		r.url = base.ResolveReference(ref).String()
	} else {
		return nil, fmt.Errorf("response to %s had neither %q in its body nor a Location header", created, idPath)
	}
	c.logger.Printf("Created %s at %s", description, r.url)
	return r, nil
}

// CreateResource POSTs params to the client's base URL and returns the new resource. Any status
// other than 2xx is an error.
func (c *RESTClient) CreateResource(params interface{}, idPath, description string) (*RemoteResource, error) {
	resp, err := c.Post("", params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected response status %d when creating %s: %s",
			resp.StatusCode, description, string(resp.Body))
	}
	return c.NewRemoteResource(resp, idPath, description)
}

// ID returns the identifier reported by the service, or "" if the resource was located by
// its URL only.
func (r *RemoteResource) ID() string {
	return r.id
}

func (r *RemoteResource) URL() string {
	return r.url
}

func (r *RemoteResource) Deleted() bool {
	return r.deleted
}

func (r *RemoteResource) Get() (*Response, error) {
	return r.client.Get(r.url, nil)
}

func (r *RemoteResource) Put(params interface{}) (*Response, error) {
	return r.client.Put(r.url, params)
}

// Delete sends a DELETE request for the resource. It does not check the status, but if it
// is ExpectedDeleteStatus the resource is marked as deleted and Close will do nothing.
func (r *RemoteResource) Delete() (*Response, error) {
	resp, err := r.client.Delete(r.url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == r.ExpectedDeleteStatus {
		r.deleted = true
	}
	return resp, nil
}

// Close deletes the resource unless that has already been done, and returns an error if the
// service did not answer with ExpectedDeleteStatus.
func (r *RemoteResource) Close() error {
	if r.deleted {
		return nil
	}
	resp, err := r.Delete()
	if err != nil {
		return fmt.Errorf("could not delete %s: %w", r.description, err)
	}
	if !r.deleted {
		return fmt.Errorf("deleting %s: DELETE %s returned HTTP status %d, expected %d",
			r.description, r.url, resp.StatusCode, r.ExpectedDeleteStatus)
	}
	return nil
}
