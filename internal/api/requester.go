package api

import "context"

// Requester is the surface resource services use against the core
// pipeline: URL composition plus request execution. Splitting it from
// *Client lets tests substitute either half independently.
type Requester interface {
	// courseURL composes a course-scoped endpoint URL with query pairs.
	courseURL(endpoint string, query Pairs) string

	// globalPath composes a URL addressed by global id, with no course
	// scope segment.
	globalPath(endpoint string) string

	// listQuery prepends the page-size preference to a listing's query.
	listQuery(query Pairs) Pairs

	// get issues a single GET against an absolute URL.
	get(ctx context.Context, rawurl string) (*Envelope, error)

	// getAll drives the pagination engine from a starting URL.
	getAll(ctx context.Context, rawurl string) (*Envelope, error)

	// submit issues a mutating call with a form-encoded body.
	submit(ctx context.Context, method, rawurl string, form Pairs) (*Envelope, error)
}
