package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oss-plugin-hub/pluginhub/pkg/httputil"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "")
	c.baseURL = srv.URL
	return c
}

func TestComplete(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("missing auth header")
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req["model"] != DefaultModel {
			t.Errorf("model = %v", req["model"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `[{"repo": "octo/plugin"}]`}},
			},
		})
	}))

	text, err := client.Complete(context.Background(), "classify this")
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if text != `[{"repo": "octo/plugin"}]` {
		t.Errorf("text = %q", text)
	}
}

func TestComplete_RateLimited(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Complete(context.Background(), "classify this")
	if !errors.Is(err, integrations.ErrRateLimited) {
		t.Errorf("got %v, want ErrRateLimited", err)
	}
	if httputil.IsRetryable(err) {
		t.Error("rate limit must not be retryable at the client layer")
	}
}

func TestComplete_ServerErrorIsRetryable(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Complete(context.Background(), "classify this")
	if !httputil.IsRetryable(err) {
		t.Errorf("got %v, want retryable", err)
	}
}

func TestComplete_EmptyChoicesIsRetryable(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))

	_, err := client.Complete(context.Background(), "classify this")
	if !httputil.IsRetryable(err) {
		t.Errorf("got %v, want retryable", err)
	}
}
