package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestListFolders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/1/folders" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 30, "full_name": "course files/week1"}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok", 1)
	folders, err := c.Folders().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(folders) != 1 {
		t.Errorf("len = %d, want 1", len(folders))
	}
}

func TestCreateFolder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body, _ := url.ParseQuery(string(raw))
		if got := body.Get("name"); got != "materials" {
			t.Errorf("name = %q", got)
		}
		if got := body.Get("parent_folder_path"); got != "week1/labs" {
			t.Errorf("parent_folder_path = %q (separators should be normalized)", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 31, "name": "materials"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok", 1)
	folder, err := c.Folders().Create(context.Background(), "materials", `week1\labs`)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id, _ := folder.Int("id"); id != 31 {
		t.Errorf("id = %d, want 31", id)
	}
}

func TestCreateFolder_EmptyName(t *testing.T) {
	c := newTestClient("https://unreachable.invalid", "tok", 1)
	_, err := c.Folders().Create(context.Background(), "", "")
	if !IsArgumentError(err) {
		t.Fatalf("expected argument error, got %v", err)
	}
}

func TestDeleteFolder_UsesGlobalPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 31}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok", 1)
	if err := c.Folders().Delete(context.Background(), 31); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotPath != "/api/v1/folders/31" {
		t.Errorf("path = %q, want /api/v1/folders/31", gotPath)
	}
}
