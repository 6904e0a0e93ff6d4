package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const requestIDHeader = "X-Request-Id"

// RESTClient sends JSON requests to the service under test. It makes exactly one attempt for each
// request; if the round trip itself fails, the error is a *TransportError.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// Response is a fully read HTTP response from the service under test.
type Response struct {
	Method     string
	URL        string
	RequestID  string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// TransportError means that a request never got an HTTP response: the connection was refused,
// timed out, or was broken while reading the body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewRESTClient creates a client for the resource at baseURL. Paths given to its methods are
// appended to baseURL unless they are already absolute URLs.
func NewRESTClient(baseURL string, httpClient *http.Client, logger Logger) *RESTClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = NullLogger()
	}
	return &RESTClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithLogger returns a copy of the client that sends its debug output somewhere else, normally
// to the debug logger of a single test.
func (c *RESTClient) WithLogger(logger Logger) *RESTClient {
	c1 := *c
	if logger != nil {
		c1.logger = logger
	}
	return &c1
}

func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

func (c *RESTClient) resolve(path string, query url.Values) string {
	target := path
	if !strings.HasPrefix(path, "http:") && !strings.HasPrefix(path, "https:") {
		target = c.baseURL + path
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *RESTClient) Get(path string, query url.Values) (*Response, error) {
	return c.Do(http.MethodGet, path, query, nil)
}

func (c *RESTClient) Post(path string, body interface{}) (*Response, error) {
	return c.Do(http.MethodPost, path, nil, body)
}

func (c *RESTClient) Put(path string, body interface{}) (*Response, error) {
	return c.Do(http.MethodPut, path, nil, body)
}

func (c *RESTClient) Delete(path string) (*Response, error) {
	return c.Do(http.MethodDelete, path, nil, nil)
}

// Do sends a request. If body is non-nil it is marshaled as JSON. Any HTTP status is a
// successful result as far as Do is concerned; checking it is up to the caller.
func (c *RESTClient) Do(method, path string, query url.Values, body interface{}) (*Response, error) {
	target := c.resolve(path, query)

	var reqBody io.Reader
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("can't encode request body for %s %s: %w", method, target, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set(requestIDHeader, requestID)

	if data != nil {
		c.logger.Printf(">> %s %s (%s): %s", method, target, requestID, string(data))
	} else {
		c.logger.Printf(">> %s %s (%s)", method, target, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("<< %s %s failed: %s", method, target, err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("<< %s %s: error reading body: %s", method, target, err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	c.logger.Printf("<< %d %s", resp.StatusCode, string(respData))

	return &Response{
		Method:     method,
		URL:        target,
		RequestID:  requestID,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respData,
	}, nil
}

// Get looks up a value in the JSON response body using gjson path syntax, such as
// "_embedded.users.#" for the length of an array.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// DecodeJSON unmarshals the response body.
func (r *Response) DecodeJSON(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("malformed JSON in response to %s: %w", r, err)
	}
	return nil
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s", r.Method, r.URL)
}
