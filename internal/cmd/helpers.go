package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/canvaslms/canvas-cli/internal/api"
	"github.com/canvaslms/canvas-cli/internal/config"
	"github.com/canvaslms/canvas-cli/internal/filter"
	"github.com/canvaslms/canvas-cli/internal/iocontext"
	"github.com/canvaslms/canvas-cli/internal/outfmt"
	"github.com/canvaslms/canvas-cli/internal/resolve"
)

// getClient resolves credentials and constructs a probed client.
func getClient(ctx context.Context) (*api.Client, error) {
	account, err := config.LoadAccount()
	if err != nil {
		return nil, err
	}

	opts := []api.Option{api.WithDebug(flags.Debug)}
	if flags.PerPage > 0 {
		opts = append(opts, api.WithPerPage(flags.PerPage))
	}
	client, err := api.NewClient(ctx, account.BaseURL, account.Token, account.CourseID, opts...)
	if err != nil {
		return nil, err
	}
	if flags.Timeout > 0 {
		client.HTTP.Timeout = flags.Timeout
	}
	return client, nil
}

// printRecords renders a record set per the output mode: a table in text
// mode, JSON otherwise, with the --jq filter applied when given.
func printRecords(ctx context.Context, records api.RecordSet, emptyMessage string) error {
	io := iocontext.GetIO(ctx)

	if !outfmt.IsJSON(ctx) && flags.JQ == "" {
		if len(records) == 0 {
			fmt.Fprintln(io.Out, emptyMessage)
			return nil
		}
		fmt.Fprintln(io.Out, records.PrettyTable())
		return nil
	}

	// Records decode with json.Number, which gojq rejects; re-decode to
	// plain values only when a filter actually runs so large ids stay
	// exact otherwise.
	var data any = records
	if flags.JQ != "" {
		plain, err := roundTrip(records)
		if err != nil {
			return err
		}
		data, err = filter.Apply(plain, flags.JQ)
		if err != nil {
			return err
		}
	}

	if outfmt.ModeFromContext(ctx) == outfmt.JSONL {
		enc := json.NewEncoder(io.Out)
		switch v := data.(type) {
		case api.RecordSet:
			for _, r := range v {
				if err := enc.Encode(r); err != nil {
					return err
				}
			}
		case []any:
			for _, item := range v {
				if err := enc.Encode(item); err != nil {
					return err
				}
			}
		default:
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
		return nil
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(io.Out, string(out))
	return nil
}

// printRecord renders a single record.
func printRecord(ctx context.Context, record api.Record) error {
	return printRecords(ctx, api.RecordSet{record}, "<empty>")
}

// roundTrip re-decodes records into plain JSON values (no json.Number),
// the only value domain gojq accepts.
func roundTrip(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// parseID parses a positional numeric id argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

// resolveAssignmentID accepts a numeric id or an assignment name, fuzzy
// matched against the course's assignments.
func resolveAssignmentID(ctx context.Context, client *api.Client, arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}
	assignments, err := client.Assignments().List(ctx, api.ListAssignmentsOptions{})
	if err != nil {
		return 0, err
	}
	items := make([]resolve.Named, 0, len(assignments))
	for _, a := range assignments {
		id, ok := a.Int("id")
		if !ok {
			continue
		}
		items = append(items, resolve.Named{ID: id, Name: a.Str("name")})
	}
	return resolve.ByName(arg, items)
}
