package reportstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_PutAndGet(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		switch r.Method {
		case http.MethodPut:
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			json.NewEncoder(w).Encode(Record{ProjectID: "proj-1", Blob: json.RawMessage(`{"version":"1.0"}`)})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	ctx := context.Background()

	if err := c.Put(ctx, "proj-1", []byte(`{"version":"1.0"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("missing bearer auth: %q", gotAuth)
	}
	if gotPath != "/reports/proj-1" {
		t.Errorf("unexpected path: %s", gotPath)
	}

	rec, err := c.Get(ctx, "proj-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil || rec.ProjectID != "proj-1" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestClient_GetNotFoundIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL, "k").Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("404 should not be an error: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}

func TestClient_ErrorIncludesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").Put(context.Background(), "p", []byte(`{}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "502") || !strings.Contains(got, "storage unavailable") {
		t.Errorf("error lacks context: %v", err)
	}
}

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("limit not forwarded: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"reports": []Entry{{ProjectID: "a"}, {ProjectID: "b"}},
		})
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL, "k").List(context.Background(), 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ProjectID != "a" {
		t.Errorf("unexpected entries: %v", entries)
	}
}
