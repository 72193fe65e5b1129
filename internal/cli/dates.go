// Package cli holds small helpers shared by the command layer.
package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Matches "3d", "2w", "12h": an offset from now, used for due dates.
var offsetRegex = regexp.MustCompile(`^(\d+)([wdh])$`)

// ParseDueTime parses the human-friendly date expressions accepted by
// flags like --due: "tomorrow", "2025-10-31", "3d", "2w", or RFC 3339.
// Day-granular expressions resolve to end of day local time, matching how
// instructors think about deadlines.
func ParseDueTime(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}

	switch strings.ToLower(raw) {
	case "today":
		return endOfDay(now), nil
	case "tomorrow":
		return endOfDay(now.AddDate(0, 0, 1)), nil
	}

	if m := offsetRegex.FindStringSubmatch(strings.ToLower(raw)); len(m) == 3 {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return time.Time{}, fmt.Errorf("invalid date expression %q", raw)
		}
		switch m[2] {
		case "w":
			return endOfDay(now.AddDate(0, 0, 7*n)), nil
		case "d":
			return endOfDay(now.AddDate(0, 0, n)), nil
		case "h":
			return now.Add(time.Duration(n) * time.Hour), nil
		}
	}

	if t, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return endOfDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date expression %q", raw)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
