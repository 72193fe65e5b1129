package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListStudentsOptions filter the student listing. All fields are optional.
type ListStudentsOptions struct {
	Search          string
	EnrollmentState []string
	Include         []string
}

// List retrieves all actively enrolled students across every page.
func (s StudentsService) List(ctx context.Context, opts ListStudentsOptions) (RecordSet, error) {
	return listStudents(ctx, s.Client, opts)
}

func listStudents(ctx context.Context, r Requester, opts ListStudentsOptions) (RecordSet, error) {
	decl := []Param{
		{Name: "Search", Key: "search_term", Kind: KindString},
		{Name: "EnrollmentState", Key: "enrollment_state[]", Kind: KindString},
		{Name: "Include", Key: "include[]", Kind: KindString},
	}
	values := map[string]any{
		"Search":          opts.Search,
		"EnrollmentState": opts.EnrollmentState,
		"Include":         opts.Include,
	}
	// The enrollment type is a fixed precondition of this listing, not a
	// declared option.
	prefix := Pairs{{Key: "enrollment_type[]", Value: "student"}}
	query, err := EncodeArgs(decl, values, prefix, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("users", r.listQuery(query))
	env, err := r.getAll(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return env.Records, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Records, nil
}

// Get retrieves a single enrolled user by id.
func (s StudentsService) Get(ctx context.Context, userID int64) (Record, error) {
	return getStudent(ctx, s.Client, userID)
}

func getStudent(ctx context.Context, r Requester, userID int64) (Record, error) {
	url := r.courseURL(fmt.Sprintf("users/%d", userID), nil)
	env, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return nil, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}
