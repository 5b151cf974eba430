package scorecard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oss-plugin-hub/pluginhub/pkg/httputil"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return &Client{
		Client:  integrations.NewClient(cache, nil),
		baseURL: srv.URL,
	}
}

func TestFetch(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/github.com/octo/plugin" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"score": 6.4,
			"date":  "2025-08-25",
		})
	}))

	res, ok, err := client.Fetch(context.Background(), "octo", "plugin")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if !ok {
		t.Fatal("Fetch() ok = false")
	}
	if res.Score != 6.4 {
		t.Errorf("Score = %v, want 6.4", res.Score)
	}
	if res.Date != "2025-08-25" {
		t.Errorf("Date = %q", res.Date)
	}
}

func TestFetch_NotScanned(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	res, ok, err := client.Fetch(context.Background(), "octo", "never-scanned")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if ok || res != nil {
		t.Errorf("Fetch() = %v, %v; want nil, false for an unscanned repo", res, ok)
	}
}

func TestFetch_Cached(t *testing.T) {
	calls := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{"score": 9.1, "date": "2025-08-25"})
	}))

	for range 2 {
		res, ok, err := client.Fetch(context.Background(), "octo", "plugin")
		if err != nil || !ok {
			t.Fatalf("Fetch() = %v, %v", err, ok)
		}
		if res.Score != 9.1 {
			t.Errorf("Score = %v", res.Score)
		}
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1 (second fetch cached)", calls)
	}
}
