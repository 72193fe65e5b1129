package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/canvaslms/canvas-cli/internal/debug"
)

// Status is the HTTP status line of the last exchange of an operation.
type Status struct {
	Code int
	Text string
}

func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.Code, s.Text)
}

// Envelope is the result of one logical operation. For listing operations
// it covers all pages fetched, with Status taken from the last page.
// A failing HTTP status is carried here as data, never as a Go error; only
// transport-level failures propagate as errors.
type Envelope struct {
	Body    Body
	Records RecordSet
	Status  Status
	Header  http.Header
}

// OK reports whether the status is accepted for the given method:
// GET, PUT, and DELETE require 200; POST also accepts 201.
func (e *Envelope) OK(method string) bool {
	switch e.Status.Code {
	case http.StatusOK:
		return true
	case http.StatusCreated:
		return method == http.MethodPost
	}
	return false
}

// send issues one authenticated HTTP exchange. GET requests carry an
// Accept: application/json header; POST and PUT encode form as an
// application/x-www-form-urlencoded body. A non-accepted status yields an
// Envelope with an empty body and the failing status; the returned error is
// reserved for transport failures, which are always fatal.
func (c *Client) send(ctx context.Context, method, rawurl string, form Pairs) (*Envelope, error) {
	var bodyReader io.Reader
	encodedForm := ""
	if method == http.MethodPost || method == http.MethodPut {
		encodedForm = form.Encode()
		bodyReader = strings.NewReader(encodedForm)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawurl, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	switch method {
	case http.MethodGet:
		req.Header.Set("Accept", "application/json")
	case http.MethodPost, http.MethodPut:
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if c.debugEnabled(ctx) {
		args := []any{"method", method, "url", rawurl}
		if encodedForm != "" {
			args = append(args, "body", encodedForm)
		}
		slog.Debug("request", args...)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.recordRate(resp.Header)
	if c.debugEnabled(ctx) {
		args := []any{"method", method, "url", rawurl, "status", resp.StatusCode}
		if info := parseRateInfo(resp.Header); info != nil {
			if info.Cost != nil {
				args = append(args, "request_cost", *info.Cost)
			}
			if info.Remaining != nil {
				args = append(args, "rate_limit_remaining", *info.Remaining)
			}
		}
		slog.Debug("response", args...)
	}

	env := &Envelope{
		Status: Status{Code: resp.StatusCode, Text: statusText(resp)},
		Header: resp.Header,
	}
	if !env.OK(method) {
		env.Body = Body{Shape: ShapeEmpty}
		env.Records = RecordSet{}
		return env, nil
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		body, err := DecodeBody(respBody)
		if err != nil {
			return nil, err
		}
		env.Body = body
	} else {
		env.Body = Body{Shape: ShapeEmpty}
	}
	env.Records = env.Body.Normalize()
	return env, nil
}

// submit issues a mutating call (POST, PUT, DELETE) against an endpoint URL.
func (c *Client) submit(ctx context.Context, method, rawurl string, form Pairs) (*Envelope, error) {
	return c.send(ctx, method, rawurl, form)
}

// get issues a single GET. Listing operations use getAll instead.
func (c *Client) get(ctx context.Context, rawurl string) (*Envelope, error) {
	return c.send(ctx, http.MethodGet, rawurl, nil)
}

func (c *Client) debugEnabled(ctx context.Context) bool {
	return c.Debug || debug.IsEnabled(ctx)
}

func statusText(resp *http.Response) string {
	// resp.Status is "200 OK"; strip the code to keep only the reason text.
	if i := strings.IndexByte(resp.Status, ' '); i >= 0 {
		return resp.Status[i+1:]
	}
	return http.StatusText(resp.StatusCode)
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "json")
}
