package api

import (
	"errors"
	"fmt"
)

// ConnectionError is returned when the construction-time probe against the
// course root fails. No usable client exists once this is returned.
type ConnectionError struct {
	URL    string
	Status Status
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot connect to %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("cannot connect to %s: %s", e.URL, e.Status)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ArgumentError reports an invalid caller-supplied parameter, such as
// multiple values for a non-repeatable parameter.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
}

// ShapeError reports a response body that is neither a JSON object, an
// array, nor empty. It indicates a misunderstanding of the remote contract
// rather than a recoverable condition.
type ShapeError struct {
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape: %s", e.Detail)
}

// StatusError is raised by resource services when a call they depend on
// returned a non-accepted status. The core executor never raises it; it
// surfaces failing statuses as data.
type StatusError struct {
	Method string
	URL    string
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Status)
}

// IsConnectionError checks if the error is a construction-time probe failure.
func IsConnectionError(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

// IsArgumentError checks if the error is an invalid-argument error.
func IsArgumentError(err error) bool {
	var e *ArgumentError
	return errors.As(err, &e)
}

// IsShapeError checks if the error is an unexpected-response-shape error.
func IsShapeError(err error) bool {
	var e *ShapeError
	return errors.As(err, &e)
}

// IsNotFound checks if the error carries a 404 status.
func IsNotFound(err error) bool {
	var e *StatusError
	return errors.As(err, &e) && e.Status.Code == 404
}
