package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "pluginhub")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "pluginhub") {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestParseNPMKey(t *testing.T) {
	tests := []struct {
		key           string
		name, version string
		ok            bool
	}{
		{"npm:left-pad@1.3.0", "left-pad", "1.3.0", true},
		{"npm:@babel/core@7.23.0", "@babel/core", "7.23.0", true},
		{"npm:noversion", "", "", false},
		{"owner/repo", "", "", false},
	}
	for _, tt := range tests {
		name, version, ok := parseNPMKey(tt.key)
		if ok != tt.ok || name != tt.name || version != tt.version {
			t.Errorf("parseNPMKey(%q) = %q, %q, %v; want %q, %q, %v",
				tt.key, name, version, ok, tt.name, tt.version, tt.ok)
		}
	}
}

func TestSplitPlatforms(t *testing.T) {
	got := splitPlatforms(" vscode, obsidian ,,chrome ")
	want := []string{"vscode", "obsidian", "chrome"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitPlatforms = %v, want %v", got, want)
	}
}
