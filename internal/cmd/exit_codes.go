package cmd

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/pflag"

	"github.com/canvaslms/canvas-cli/internal/api"
)

const (
	exitOK       = 0
	exitGeneric  = 1
	exitUsage    = 2
	exitAuth     = 3
	exitNotFound = 4
	exitServer   = 7
	exitNetwork  = 8
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Status.Code == 401:
			return exitAuth
		case statusErr.Status.Code == 404:
			return exitNotFound
		case statusErr.Status.Code >= 500:
			return exitServer
		case statusErr.Status.Code >= 400:
			return exitGeneric
		}
	}
	if api.IsConnectionError(err) {
		return exitNetwork
	}
	if api.IsArgumentError(err) {
		return exitUsage
	}
	if isNetworkError(err) {
		return exitNetwork
	}
	if isUsageError(err) {
		return exitUsage
	}
	return exitGeneric
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "tls") ||
		strings.Contains(msg, "i/o timeout")
}

func isUsageError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"requires at least",
		"requires exactly",
		"invalid argument",
		"is required",
		"required flag",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
