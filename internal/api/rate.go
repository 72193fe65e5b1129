package api

import (
	"net/http"
	"strconv"
	"strings"
)

// RateInfo holds the rate telemetry Canvas attaches to responses: the cost
// charged for the request and the remaining quota. Purely observational;
// nothing in the client gates behavior on it.
type RateInfo struct {
	Cost      *float64
	Remaining *float64
}

// LastRate returns the most recent rate telemetry seen by the client, or
// nil if no response carried any.
func (c *Client) LastRate() *RateInfo {
	c.rateMu.Lock()
	defer c.rateMu.Unlock()
	if c.lastRate == nil {
		return nil
	}
	cp := RateInfo{}
	if c.lastRate.Cost != nil {
		v := *c.lastRate.Cost
		cp.Cost = &v
	}
	if c.lastRate.Remaining != nil {
		v := *c.lastRate.Remaining
		cp.Remaining = &v
	}
	return &cp
}

func (c *Client) recordRate(h http.Header) {
	info := parseRateInfo(h)
	if info == nil {
		return
	}
	c.rateMu.Lock()
	defer c.rateMu.Unlock()
	c.lastRate = info
}

func parseRateInfo(h http.Header) *RateInfo {
	if h == nil {
		return nil
	}
	cost := strings.TrimSpace(h.Get("X-Request-Cost"))
	remaining := strings.TrimSpace(h.Get("X-Rate-Limit-Remaining"))
	if cost == "" && remaining == "" {
		return nil
	}
	info := &RateInfo{}
	if cost != "" {
		if v, err := strconv.ParseFloat(cost, 64); err == nil {
			info.Cost = &v
		}
	}
	if remaining != "" {
		if v, err := strconv.ParseFloat(remaining, 64); err == nil {
			info.Remaining = &v
		}
	}
	if info.Cost == nil && info.Remaining == nil {
		return nil
	}
	return info
}
