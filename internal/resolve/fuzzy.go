// Package resolve provides fuzzy name-to-id matching for course resources,
// so CLI users can say "midterm" instead of hunting down an assignment id.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Named is any resource with an id and a display name.
type Named struct {
	ID   int64
	Name string
}

// Match is one fuzzy match result with its score.
type Match struct {
	ID    int64
	Name  string
	Score int
}

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrEmptyItems = errors.New("no items to match against")
	ErrNoMatch    = errors.New("no match")
)

// AmbiguousError indicates multiple candidates matched equally well.
// Matches are sorted best-first.
type AmbiguousError struct {
	Query   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous match for %q", e.Query)
	if len(e.Matches) > 0 {
		b.WriteString(", candidates:")
		for _, m := range e.Matches {
			_, _ = fmt.Fprintf(&b, "\n  %d: %s", m.ID, m.Name)
		}
	}
	return b.String()
}

type lowerNames []Named

func (s lowerNames) String(i int) string { return strings.ToLower(s[i].Name) }
func (s lowerNames) Len() int            { return len(s) }

// ByName finds the best matching item by display name and returns its id.
// Exact case-insensitive matches win outright; otherwise fuzzy matching
// applies, and a tie between the top two candidates is an *AmbiguousError.
func ByName(query string, items []Named) (int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, ErrEmptyQuery
	}
	if len(items) == 0 {
		return 0, ErrEmptyItems
	}

	lowered := strings.ToLower(query)
	for _, item := range items {
		if strings.ToLower(item.Name) == lowered {
			return item.ID, nil
		}
	}

	results := fuzzy.FindFrom(lowered, lowerNames(items))
	if len(results) == 0 {
		return 0, fmt.Errorf("%w for %q", ErrNoMatch, query)
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		matches := make([]Match, 0, len(results))
		for _, r := range results {
			matches = append(matches, Match{
				ID:    items[r.Index].ID,
				Name:  items[r.Index].Name,
				Score: r.Score,
			})
			if len(matches) == 5 {
				break
			}
		}
		return 0, &AmbiguousError{Query: query, Matches: matches}
	}
	return items[results[0].Index].ID, nil
}
