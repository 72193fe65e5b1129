package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetAll_FollowsNextLinks(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/page1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Link", fmt.Sprintf(`<%s/page2>; rel="next", <%s/page1>; rel="current"`, server.URL, server.URL))
		_, _ = w.Write([]byte(`[{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`))
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Link", fmt.Sprintf(`<%s/page3>; rel="next"`, server.URL))
		_, _ = w.Write([]byte(`[{"id": 3, "score": 9}]`))
	})
	mux.HandleFunc("/page3", func(w http.ResponseWriter, _ *http.Request) {
		// Last page: no next relation.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 4}]`))
	})

	c := newTestClient(server.URL, "t", 1)
	env, err := c.getAll(context.Background(), server.URL+"/page1")
	if err != nil {
		t.Fatalf("getAll() error = %v", err)
	}
	if !env.OK(http.MethodGet) {
		t.Errorf("status = %v, want accepted", env.Status)
	}
	if len(env.Records) != 4 {
		t.Fatalf("Records len = %d, want 4", len(env.Records))
	}

	// Field-uniform across pages with differing field sets.
	for i, r := range env.Records {
		for _, field := range []string{"id", "name", "score"} {
			if _, ok := r[field]; !ok {
				t.Errorf("record %d missing field %q", i, field)
			}
		}
	}
	if id, _ := env.Records[0].Int("id"); id != 1 {
		t.Errorf("first record id = %d, want 1", id)
	}
	if id, _ := env.Records[3].Int("id"); id != 4 {
		t.Errorf("last record id = %d, want 4", id)
	}
}

func TestGetAll_EmptyPageTerminatesKeepingAccumulation(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/page1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Link", fmt.Sprintf(`<%s/page2>; rel="next"`, server.URL))
		_, _ = w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Link", fmt.Sprintf(`<%s/page3>; rel="next"`, server.URL))
		_, _ = w.Write([]byte(``))
	})

	c := newTestClient(server.URL, "t", 1)
	env, err := c.getAll(context.Background(), server.URL+"/page1")
	if err != nil {
		t.Fatalf("getAll() error = %v", err)
	}
	if len(env.Records) != 2 {
		t.Errorf("Records len = %d, want 2 (page 1 kept)", len(env.Records))
	}
}

func TestGetAll_FailingPageReturnsPartialWithStatus(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/page1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Link", fmt.Sprintf(`<%s/page2>; rel="next"`, server.URL))
		_, _ = w.Write([]byte(`[{"id": 1}]`))
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := newTestClient(server.URL, "t", 1)
	env, err := c.getAll(context.Background(), server.URL+"/page1")
	if err != nil {
		t.Fatalf("a failing page must not surface as an error, got %v", err)
	}
	if env.OK(http.MethodGet) {
		t.Error("envelope should carry the failing status")
	}
	if env.Status.Code != http.StatusBadGateway {
		t.Errorf("Status.Code = %d, want 502", env.Status.Code)
	}
	if len(env.Records) != 1 {
		t.Errorf("Records len = %d, want 1 (partial accumulation kept)", len(env.Records))
	}
}

func TestGetAll_TransportFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c := newTestClient(server.URL, "t", 1)
	if _, err := c.getAll(context.Background(), server.URL+"/x"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestNextLink(t *testing.T) {
	h := http.Header{}
	if nextLink(h) != "" {
		t.Error("missing Link header should yield empty")
	}

	h.Set("Link", `<https://x.test/p2>; rel="next", <https://x.test/p9>; rel="last"`)
	if got := nextLink(h); got != "https://x.test/p2" {
		t.Errorf("nextLink = %q", got)
	}

	h.Set("Link", `<https://x.test/p1>; rel="first"`)
	if nextLink(h) != "" {
		t.Error("header without next relation should yield empty")
	}
}
