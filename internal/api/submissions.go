package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListSubmissionsOptions filter a submission listing for one assignment.
type ListSubmissionsOptions struct {
	// IncludeHistory also returns every prior attempt of each submission.
	IncludeHistory bool
	// Workflow narrows to a workflow state ("submitted", "graded", ...).
	Workflow string
}

// List retrieves every student's submission for an assignment, across all
// pages. Submission history entries arrive as a shape-shifting sub-field
// (object or list depending on cardinality); use History to read them.
func (s SubmissionsService) List(ctx context.Context, assignmentID int64, opts ListSubmissionsOptions) (RecordSet, error) {
	return listSubmissions(ctx, s.Client, assignmentID, opts)
}

func listSubmissions(ctx context.Context, r Requester, assignmentID int64, opts ListSubmissionsOptions) (RecordSet, error) {
	decl := []Param{
		{Name: "Workflow", Key: "workflow_state", Kind: KindString},
	}
	values := map[string]any{
		"Workflow": opts.Workflow,
	}
	prefix := Pairs{{Key: "student_ids[]", Value: "all"}}
	if opts.IncludeHistory {
		prefix = append(prefix, Pair{Key: "include[]", Value: "submission_history"})
	}
	query, err := EncodeArgs(decl, values, prefix, nil)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("assignments/%d/submissions", assignmentID)
	url := r.courseURL(endpoint, r.listQuery(query))
	env, err := r.getAll(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return env.Records, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Records, nil
}

// History normalizes a submission's history sub-field into a RecordSet,
// coercing the single-object case into a one-element set.
func History(submission Record) RecordSet {
	return NormalizeField(submission["submission_history"])
}

// Attachments normalizes an attempt's attachments sub-field.
func Attachments(attempt Record) RecordSet {
	return NormalizeField(attempt["attachments"])
}

// Grade posts a grade for one student's submission.
func (s SubmissionsService) Grade(ctx context.Context, assignmentID, userID int64, grade string) (Record, error) {
	return gradeSubmission(ctx, s.Client, assignmentID, userID, grade)
}

func gradeSubmission(ctx context.Context, r Requester, assignmentID, userID int64, grade string) (Record, error) {
	if grade == "" {
		return nil, &ArgumentError{Param: "grade", Reason: "empty grade"}
	}
	form := Pairs{{Key: "submission[posted_grade]", Value: grade}}
	endpoint := fmt.Sprintf("assignments/%d/submissions/%d", assignmentID, userID)
	url := r.courseURL(endpoint, nil)
	env, err := r.submit(ctx, http.MethodPut, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPut) {
		return nil, &StatusError{Method: http.MethodPut, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}
