package enrich

import (
	"testing"
	"time"
)

func TestIsStaleBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if IsStale(now.Add(-365*24*time.Hour), now) {
		t.Error("exactly 365 days old reported stale, want fresh")
	}
	if !IsStale(now.Add(-366*24*time.Hour), now) {
		t.Error("366 days old reported fresh, want stale")
	}
	if IsStale(now.Add(-24*time.Hour), now) {
		t.Error("one day old reported stale")
	}
}

func TestStaleCounterRatio(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var c StaleCounter
	c.Observe(now.Add(-400*24*time.Hour), now)
	c.Observe(now.Add(-500*24*time.Hour), now)
	c.Observe(now.Add(-10*24*time.Hour), now)

	if c.Stale != 2 || c.Total != 3 {
		t.Errorf("counter = %+v, want 2/3", c)
	}
	if got := c.Ratio(); got != 0.667 {
		t.Errorf("Ratio() = %v, want 0.667", got)
	}

	var empty StaleCounter
	if empty.Ratio() != 0 {
		t.Errorf("empty Ratio() = %v, want 0", empty.Ratio())
	}
}

func TestCleanVersion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"^1.2.3", "1.2.3"},
		{"~0.5.0", "0.5.0"},
		{"1.0.0", "1.0.0"},
		{"^~2.0", "2.0"},
	}
	for _, tt := range tests {
		if got := CleanVersion(tt.in); got != tt.want {
			t.Errorf("CleanVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsNPMPackage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"left-pad", true},
		{"@scope/pkg", true},
		{"github:owner/repo", false},
		{"git+https://github.com/a/b.git", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsNPMPackage(tt.name); got != tt.want {
			t.Errorf("IsNPMPackage(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
