package api

import (
	"context"
	"fmt"
	"net/http"
)

// List retrieves all course modules across every page.
func (s ModulesService) List(ctx context.Context, include ...string) (RecordSet, error) {
	return listModules(ctx, s.Client, include)
}

func listModules(ctx context.Context, r Requester, include []string) (RecordSet, error) {
	decl := []Param{
		{Name: "Include", Key: "include[]", Kind: KindString},
	}
	values := map[string]any{"Include": include}
	query, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("modules", r.listQuery(query))
	env, err := r.getAll(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return env.Records, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Records, nil
}

// Create adds a module to the course.
func (s ModulesService) Create(ctx context.Context, name string, position int) (Record, error) {
	return createModule(ctx, s.Client, name, position)
}

func createModule(ctx context.Context, r Requester, name string, position int) (Record, error) {
	if name == "" {
		return nil, &ArgumentError{Param: "name", Reason: "empty module name"}
	}
	decl := []Param{
		{Name: "Name", Key: "module[name]", Kind: KindString},
		{Name: "Position", Key: "module[position]", Kind: KindInt},
	}
	values := map[string]any{"Name": name}
	if position > 0 {
		values["Position"] = position
	}
	form, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("modules", nil)
	env, err := r.submit(ctx, http.MethodPost, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPost) {
		return nil, &StatusError{Method: http.MethodPost, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}

// Update renames or repositions a module.
func (s ModulesService) Update(ctx context.Context, id int64, name string, position int) (Record, error) {
	return updateModule(ctx, s.Client, id, name, position)
}

func updateModule(ctx context.Context, r Requester, id int64, name string, position int) (Record, error) {
	decl := []Param{
		{Name: "Name", Key: "module[name]", Kind: KindString},
		{Name: "Position", Key: "module[position]", Kind: KindInt},
	}
	values := map[string]any{"Name": name}
	if position > 0 {
		values["Position"] = position
	}
	form, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL(fmt.Sprintf("modules/%d", id), nil)
	env, err := r.submit(ctx, http.MethodPut, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPut) {
		return nil, &StatusError{Method: http.MethodPut, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}

// Delete removes a module.
func (s ModulesService) Delete(ctx context.Context, id int64) error {
	return deleteModule(ctx, s.Client, id)
}

func deleteModule(ctx context.Context, r Requester, id int64) error {
	url := r.courseURL(fmt.Sprintf("modules/%d", id), nil)
	env, err := r.submit(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if !env.OK(http.MethodDelete) {
		return &StatusError{Method: http.MethodDelete, URL: url, Status: env.Status}
	}
	return nil
}
