package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestListModules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/1/modules" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query()["include[]"]; len(got) != 2 {
			t.Errorf("include[] = %v", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 5, "name": "Week 1"}, {"id": 6, "name": "Week 2"}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok", 1)
	modules, err := c.Modules().List(context.Background(), "items", "content_details")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(modules) != 2 {
		t.Errorf("len = %d, want 2", len(modules))
	}
}

func TestCreateModule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body, _ := url.ParseQuery(string(raw))
		if got := body.Get("module[name]"); got != "Week 3" {
			t.Errorf("module[name] = %q", got)
		}
		if got := body.Get("module[position]"); got != "3" {
			t.Errorf("module[position] = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7, "name": "Week 3", "position": 3}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok", 1)
	module, err := c.Modules().Create(context.Background(), "Week 3", 3)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id, _ := module.Int("id"); id != 7 {
		t.Errorf("id = %d, want 7", id)
	}
}

func TestCreateModule_EmptyName(t *testing.T) {
	c := newTestClient("https://unreachable.invalid", "tok", 1)
	_, err := c.Modules().Create(context.Background(), "", 0)
	if !IsArgumentError(err) {
		t.Fatalf("expected argument error, got %v", err)
	}
}

func TestUpdateModule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/v1/courses/1/modules/7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		body, _ := url.ParseQuery(string(raw))
		// Position zero means "leave unchanged" and stays off the wire.
		if _, ok := body["module[position]"]; ok {
			t.Error("module[position] should be omitted when zero")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "name": "Week 3 (revised)"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok", 1)
	module, err := c.Modules().Update(context.Background(), 7, "Week 3 (revised)", 0)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if module.Str("name") != "Week 3 (revised)" {
		t.Errorf("name = %q", module.Str("name"))
	}
}

func TestDeleteModule(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok", 1)
	if err := c.Modules().Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/courses/1/modules/7" {
		t.Errorf("%s %s, want DELETE /api/v1/courses/1/modules/7", gotMethod, gotPath)
	}
}
