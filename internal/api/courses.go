package api

import (
	"context"
	"net/http"
	"time"
)

// Get retrieves the course the client is scoped to.
func (s CoursesService) Get(ctx context.Context) (Record, error) {
	return getCourse(ctx, s.Client)
}

func getCourse(ctx context.Context, r Requester) (Record, error) {
	url := r.courseURL("", nil)
	env, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return nil, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}

// UpdateCourseOptions are the mutable course settings. Zero values are
// omitted from the request.
type UpdateCourseOptions struct {
	Name         string
	Code         string
	StartAt      time.Time
	EndAt        time.Time
	IsPublic     *bool
	SyllabusBody string
}

// Update changes course settings via a form-encoded PUT.
func (s CoursesService) Update(ctx context.Context, opts UpdateCourseOptions) (Record, error) {
	return updateCourse(ctx, s.Client, opts)
}

func updateCourse(ctx context.Context, r Requester, opts UpdateCourseOptions) (Record, error) {
	decl := []Param{
		{Name: "Name", Key: "course[name]", Kind: KindString},
		{Name: "Code", Key: "course[course_code]", Kind: KindString},
		{Name: "StartAt", Key: "course[start_at]", Kind: KindTime},
		{Name: "EndAt", Key: "course[end_at]", Kind: KindTime},
		{Name: "IsPublic", Key: "course[is_public]", Kind: KindBool},
		{Name: "SyllabusBody", Key: "course[syllabus_body]", Kind: KindString},
	}
	values := map[string]any{
		"Name":         opts.Name,
		"Code":         opts.Code,
		"StartAt":      opts.StartAt,
		"EndAt":        opts.EndAt,
		"SyllabusBody": opts.SyllabusBody,
	}
	if opts.IsPublic != nil {
		values["IsPublic"] = *opts.IsPublic
	}
	form, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("", nil)
	env, err := r.submit(ctx, http.MethodPut, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPut) {
		return nil, &StatusError{Method: http.MethodPut, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}
