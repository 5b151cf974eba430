package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTop100(t *testing.T, dataDir, platform, content string) {
	t.Helper()
	dir := filepath.Join(dataDir, platform)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "top100.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dataDir := t.TempDir()
	writeTop100(t, dataDir, "vscode", `{
		"top100": [
			{
				"repo": "octo/plugin",
				"name": "Plugin",
				"description": "does things",
				"tags": ["theme"],
				"downloads": 1200,
				"githubStats": {
					"stars": 42,
					"lastUpdated": "2024-05-01T00:00:00Z",
					"dependencies": {
						"dependencies": {"left-pad": "^1.0.0"},
						"devDependencies": {}
					}
				}
			}
		]
	}`)

	top, ok, err := Load(dataDir, "vscode")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("ok = false for existing document")
	}
	if len(top.Plugins) != 1 {
		t.Fatalf("got %d plugins, want 1", len(top.Plugins))
	}
	p := top.Plugins[0]
	if p.Repo != "octo/plugin" || p.Name != "Plugin" || p.Downloads != 1200 {
		t.Errorf("plugin = %+v", p)
	}
	if p.GitHubStats.Dependencies == nil || p.GitHubStats.Dependencies.Dependencies["left-pad"] != "^1.0.0" {
		t.Errorf("dependencies = %+v", p.GitHubStats.Dependencies)
	}
}

func TestLoadMissingPlatform(t *testing.T) {
	_, ok, err := Load(t.TempDir(), "vscode")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("ok = true for missing document")
	}
}

func TestLoadRejectsWrongShape(t *testing.T) {
	dataDir := t.TempDir()
	writeTop100(t, dataDir, "vscode", `{"top100": [{"repo": "a/b"}]}`)

	if _, _, err := Load(dataDir, "vscode"); err == nil {
		t.Error("entry without name passed validation")
	}

	writeTop100(t, dataDir, "chrome", `{"plugins": []}`)
	if _, _, err := Load(dataDir, "chrome"); err == nil {
		t.Error("document without top100 key passed validation")
	}
}

func TestRepos(t *testing.T) {
	dataDir := t.TempDir()
	writeTop100(t, dataDir, "vscode", `{"top100": [
		{"name": "A", "repo": "octo/plugin.git"},
		{"name": "B", "repo": "zeta/tool"},
		{"name": "C", "repo": "norepo"},
		{"name": "D"}
	]}`)
	writeTop100(t, dataDir, "obsidian", `{"top100": [
		{"name": "E", "repo": "octo/plugin"}
	]}`)

	repos, err := Repos(dataDir, []string{"vscode", "obsidian", "chrome"})
	if err != nil {
		t.Fatalf("Repos: %v", err)
	}
	want := []string{"octo/plugin", "zeta/tool"}
	if !reflect.DeepEqual(repos, want) {
		t.Errorf("repos = %v, want %v", repos, want)
	}
}

func TestIsPlatform(t *testing.T) {
	if !IsPlatform("vscode") || IsPlatform("emacs") {
		t.Error("IsPlatform misclassified")
	}
}
