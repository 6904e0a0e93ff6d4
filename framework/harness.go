package framework

import (
	"fmt"
	"net/http"
	"net/url"
)

// TestHarness knows where the service under test is and hands out REST clients for it.
type TestHarness struct {
	serviceBaseURL string
	httpClient     *http.Client
	logger         Logger
}

// NewTestHarness creates a TestHarness for the resource at serviceBaseURL, such as
// http://localhost:8080/api/users. It does not contact the service; connection problems show up
// as errors in the tests themselves.
//
// If httpClient is nil, http.DefaultClient is used.
func NewTestHarness(
	serviceBaseURL string,
	httpClient *http.Client,
	debugLogger Logger,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	u, err := url.Parse(serviceBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service URL %q: %w", serviceBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid service URL %q: must be an absolute http or https URL", serviceBaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("invalid service URL %q: must not have a query or fragment", serviceBaseURL)
	}

	debugLogger.Printf("Service under test: %s", serviceBaseURL)

	return &TestHarness{
		serviceBaseURL: serviceBaseURL,
		httpClient:     httpClient,
		logger:         debugLogger,
	}, nil
}

func (h *TestHarness) ServiceBaseURL() string {
	return h.serviceBaseURL
}

// NewClient returns a REST client for the service whose debug output goes to the given logger,
// or to the harness's own logger if it is nil.
func (h *TestHarness) NewClient(logger Logger) *RESTClient {
	if logger == nil {
		logger = h.logger
	}
	return NewRESTClient(h.serviceBaseURL, h.httpClient, logger)
}
