package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second

	// Page-size bounds enforced by the server; SetPerPage rejects values
	// outside this range.
	MinPerPage     = 10
	MaxPerPage     = 100
	DefaultPerPage = 90
)

// Client is the Canvas API client. It holds the connection configuration
// and exposes the request executor and pagination engine to the
// per-resource services.
//
// A Client is constructed once by NewClient, which probes the course root;
// no partially-usable client is ever returned. BaseURL, Token, and CourseID
// are fixed after construction; the page-size preference and debug flag may
// be updated afterwards. The client performs no locking beyond the rate
// telemetry: concurrent use by multiple callers is the caller's
// responsibility.
type Client struct {
	BaseURL  string
	Token    string
	CourseID int
	HTTP     *http.Client

	// CourseCode and CourseName are captured from the construction probe.
	CourseCode string
	CourseName string

	Debug   bool
	perPage int

	rateMu   sync.Mutex
	lastRate *RateInfo
}

// Compile-time interface implementation check
var _ Requester = (*Client)(nil)

// Option adjusts optional connection settings before the probe runs.
type Option func(*Client)

// WithPerPage sets the page-size preference. Out-of-range values are
// clamped during construction.
func WithPerPage(n int) Option {
	return func(c *Client) { c.perPage = clampPerPage(n) }
}

// WithDebug enables request logging.
func WithDebug(enabled bool) Option {
	return func(c *Client) { c.Debug = enabled }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

// NewClient builds a Canvas client and verifies it with one probe GET
// against the course root. A non-200 status or transport failure returns
// *ConnectionError and no client. On success the course's short code and
// display name are captured from the probe response.
func NewClient(ctx context.Context, baseURL, token string, courseID int, opts ...Option) (*Client, error) {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12

	c := &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Token:    token,
		CourseID: courseID,
		perPage:  DefaultPerPage,
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	probeURL := c.coursePath("")
	env, err := c.send(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return nil, &ConnectionError{URL: probeURL, Err: err}
	}
	if !env.OK(http.MethodGet) {
		return nil, &ConnectionError{URL: probeURL, Status: env.Status}
	}
	if env.Body.Shape == ShapeObject {
		c.CourseCode = env.Body.Object.Str("course_code")
		c.CourseName = env.Body.Object.Str("name")
	}
	return c, nil
}

// PerPage returns the current page-size preference.
func (c *Client) PerPage() int { return c.perPage }

// SetPerPage updates the page-size preference. Values outside
// [MinPerPage, MaxPerPage] are rejected.
func (c *Client) SetPerPage(n int) error {
	if n < MinPerPage || n > MaxPerPage {
		return &ArgumentError{
			Param:  "per_page",
			Reason: fmt.Sprintf("%d outside [%d,%d]", n, MinPerPage, MaxPerPage),
		}
	}
	c.perPage = n
	return nil
}

// SetDebug toggles request logging post hoc.
func (c *Client) SetDebug(enabled bool) { c.Debug = enabled }

func clampPerPage(n int) int {
	switch {
	case n < MinPerPage:
		return MinPerPage
	case n > MaxPerPage:
		return MaxPerPage
	}
	return n
}

// newTestClient builds a client without the construction probe.
func newTestClient(baseURL, token string, courseID int) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Token:    token,
		CourseID: courseID,
		perPage:  DefaultPerPage,
		HTTP:     &http.Client{Timeout: DefaultTimeout},
	}
}

// coursePath returns the URL for course-scoped endpoints. An empty endpoint
// addresses the course root itself.
func (c *Client) coursePath(endpoint string) string {
	if endpoint == "" {
		return fmt.Sprintf("%s/api/v1/courses/%d", c.BaseURL, c.CourseID)
	}
	return fmt.Sprintf("%s/api/v1/courses/%d/%s", c.BaseURL, c.CourseID, endpoint)
}

// globalPath returns the URL for endpoints addressed by global id rather
// than by course scope, e.g. deleting a file by its own id.
func (c *Client) globalPath(endpoint string) string {
	return fmt.Sprintf("%s/api/v1/%s", c.BaseURL, endpoint)
}

// appendQuery attaches query pairs to a URL, respecting any query component
// already present. Calling it twice with the same inputs yields identical
// bytes.
func appendQuery(rawurl string, query Pairs) string {
	if len(query) == 0 {
		return rawurl
	}
	sep := "?"
	if strings.Contains(rawurl, "?") {
		sep = "&"
	}
	return rawurl + sep + query.Encode()
}

// courseURL composes a course-scoped endpoint URL with query parameters.
func (c *Client) courseURL(endpoint string, query Pairs) string {
	return appendQuery(c.coursePath(endpoint), query)
}

// listQuery prepends the page-size preference to an operation's query pairs.
func (c *Client) listQuery(query Pairs) Pairs {
	out := make(Pairs, 0, len(query)+1)
	out = append(out, Pair{Key: "per_page", Value: fmt.Sprintf("%d", c.perPage)})
	return append(out, query...)
}
