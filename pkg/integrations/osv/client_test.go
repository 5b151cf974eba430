package osv

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

func TestQuery(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		pkg := req["package"].(map[string]any)
		if pkg["name"] != "minimist" || pkg["ecosystem"] != "npm" {
			t.Errorf("unexpected package payload: %v", pkg)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"vulns": []map[string]any{
				{
					"id": "GHSA-xvch-5gv4-984h",
					"severity": []map[string]string{
						{"type": "CVSS_V3", "score": "9.8"},
					},
				},
			},
		})
	}))

	vulns, err := client.Query(context.Background(), "npm", "minimist", "1.2.5")
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(vulns) != 1 {
		t.Fatalf("got %d vulns, want 1", len(vulns))
	}
	if vulns[0].ID != "GHSA-xvch-5gv4-984h" {
		t.Errorf("ID = %q", vulns[0].ID)
	}
}

func TestQuery_NoVulns(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))

	vulns, err := client.Query(context.Background(), "npm", "left-pad", "1.3.0")
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(vulns) != 0 {
		t.Errorf("got %d vulns, want 0", len(vulns))
	}
}

func TestMaxScore(t *testing.T) {
	tests := []struct {
		name string
		sev  []Severity
		want float64
	}{
		{"numeric score", []Severity{{Type: "CVSS_V3", Score: "7.5"}}, 7.5},
		{"picks highest", []Severity{{Type: "CVSS_V3", Score: "4.2"}, {Type: "CVSS_V4", Score: "8.1"}}, 8.1},
		{"vector only is skipped", []Severity{{Type: "CVSS_V3", Score: "CVSS:3.1/AV:N/AC:L"}}, 0},
		{"non-cvss type skipped", []Severity{{Type: "UBUNTU", Score: "9.9"}}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Vulnerability{Severity: tt.sev}
			if got := v.MaxScore(); got != tt.want {
				t.Errorf("MaxScore() = %v, want %v", got, tt.want)
			}
		})
	}
}
