package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ListAssignmentsOptions filter the assignment listing.
type ListAssignmentsOptions struct {
	Search  string
	Bucket  string
	Include []string
}

// List retrieves all assignments across every page.
func (s AssignmentsService) List(ctx context.Context, opts ListAssignmentsOptions) (RecordSet, error) {
	return listAssignments(ctx, s.Client, opts)
}

func listAssignments(ctx context.Context, r Requester, opts ListAssignmentsOptions) (RecordSet, error) {
	decl := []Param{
		{Name: "Search", Key: "search_term", Kind: KindString},
		{Name: "Bucket", Key: "bucket", Kind: KindString},
		{Name: "Include", Key: "include[]", Kind: KindString},
	}
	values := map[string]any{
		"Search":  opts.Search,
		"Bucket":  opts.Bucket,
		"Include": opts.Include,
	}
	query, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("assignments", r.listQuery(query))
	env, err := r.getAll(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return env.Records, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Records, nil
}

// Get retrieves a single assignment by id.
func (s AssignmentsService) Get(ctx context.Context, id int64) (Record, error) {
	return getAssignment(ctx, s.Client, id)
}

func getAssignment(ctx context.Context, r Requester, id int64) (Record, error) {
	url := r.courseURL(fmt.Sprintf("assignments/%d", id), nil)
	env, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return nil, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}

// CreateAssignmentOptions describe a new assignment. Name is required by
// the server; everything else is optional.
type CreateAssignmentOptions struct {
	Name            string
	Description     string
	PointsPossible  *int
	DueAt           time.Time
	UnlockAt        time.Time
	LockAt          time.Time
	Published       *bool
	SubmissionTypes []string
}

// Create creates an assignment via a form-encoded POST.
func (s AssignmentsService) Create(ctx context.Context, opts CreateAssignmentOptions) (Record, error) {
	return createAssignment(ctx, s.Client, opts)
}

func createAssignment(ctx context.Context, r Requester, opts CreateAssignmentOptions) (Record, error) {
	form, err := assignmentForm(opts)
	if err != nil {
		return nil, err
	}
	url := r.courseURL("assignments", nil)
	env, err := r.submit(ctx, http.MethodPost, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPost) {
		return nil, &StatusError{Method: http.MethodPost, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}

// Update changes an existing assignment.
func (s AssignmentsService) Update(ctx context.Context, id int64, opts CreateAssignmentOptions) (Record, error) {
	return updateAssignment(ctx, s.Client, id, opts)
}

func updateAssignment(ctx context.Context, r Requester, id int64, opts CreateAssignmentOptions) (Record, error) {
	form, err := assignmentForm(opts)
	if err != nil {
		return nil, err
	}
	url := r.courseURL(fmt.Sprintf("assignments/%d", id), nil)
	env, err := r.submit(ctx, http.MethodPut, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPut) {
		return nil, &StatusError{Method: http.MethodPut, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}

// Delete removes an assignment.
func (s AssignmentsService) Delete(ctx context.Context, id int64) error {
	return deleteAssignment(ctx, s.Client, id)
}

func deleteAssignment(ctx context.Context, r Requester, id int64) error {
	url := r.courseURL(fmt.Sprintf("assignments/%d", id), nil)
	env, err := r.submit(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if !env.OK(http.MethodDelete) {
		return &StatusError{Method: http.MethodDelete, URL: url, Status: env.Status}
	}
	return nil
}

func assignmentForm(opts CreateAssignmentOptions) (Pairs, error) {
	decl := []Param{
		{Name: "Name", Key: "assignment[name]", Kind: KindString},
		{Name: "Description", Key: "assignment[description]", Kind: KindString},
		{Name: "PointsPossible", Key: "assignment[points_possible]", Kind: KindInt},
		{Name: "DueAt", Key: "assignment[due_at]", Kind: KindTime},
		{Name: "UnlockAt", Key: "assignment[unlock_at]", Kind: KindTime},
		{Name: "LockAt", Key: "assignment[lock_at]", Kind: KindTime},
		{Name: "Published", Key: "assignment[published]", Kind: KindBool},
		{Name: "SubmissionTypes", Key: "assignment[submission_types][]", Kind: KindString},
	}
	values := map[string]any{
		"Name":            opts.Name,
		"Description":     opts.Description,
		"DueAt":           opts.DueAt,
		"UnlockAt":        opts.UnlockAt,
		"LockAt":          opts.LockAt,
		"SubmissionTypes": opts.SubmissionTypes,
	}
	if opts.PointsPossible != nil {
		values["PointsPossible"] = *opts.PointsPossible
	}
	if opts.Published != nil {
		values["Published"] = *opts.Published
	}
	return EncodeArgs(decl, values, nil, nil)
}
