package api

import (
	"context"
	"net/http"

	"github.com/peterhellberg/link"
)

// getAll drives a paginated listing: it GETs startURL, normalizes and
// merges each page into a running accumulator, and follows the Link
// header's "next" relation until none remains. The cursor URL replaces the
// prior URL wholesale; the server emits it with the full query state.
//
// A page with a non-accepted status stops the run and returns whatever has
// accumulated together with the failing status; callers must check
// Envelope.OK to know the result is complete. An empty page body likewise
// terminates, keeping the prior accumulation. Transport failures propagate
// as errors.
//
// No maximum page count is enforced: a misbehaving server with a cursor
// cycle will loop indefinitely. Callers wanting a hard cap should wrap the
// call with a context deadline or their own budget.
func (c *Client) getAll(ctx context.Context, startURL string) (*Envelope, error) {
	acc := RecordSet{}
	url := startURL
	for {
		env, err := c.get(ctx, url)
		if err != nil {
			return nil, err
		}
		if !env.OK(http.MethodGet) {
			return &Envelope{
				Records: acc,
				Status:  env.Status,
				Header:  env.Header,
			}, nil
		}
		if env.Body.Empty() {
			return &Envelope{
				Records: acc,
				Status:  env.Status,
				Header:  env.Header,
			}, nil
		}
		acc = acc.Merge(env.Records)

		next := nextLink(env.Header)
		if next == "" {
			return &Envelope{
				Records: acc,
				Status:  env.Status,
				Header:  env.Header,
			}, nil
		}
		url = next
	}
}

// nextLink extracts the "next" relation from a Link header, or "" when the
// listing is exhausted.
func nextLink(h http.Header) string {
	if h == nil {
		return ""
	}
	if l, ok := link.ParseHeader(h)["next"]; ok {
		return l.URI
	}
	return ""
}
