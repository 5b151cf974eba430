package classify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
)

func TestBuildInputReadsReadme(t *testing.T) {
	readmeRoot := t.TempDir()
	dir := filepath.Join(readmeRoot, "obsidian")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "octo_plugin.md"), []byte("# Plugin\nDoes things."), 0o644); err != nil {
		t.Fatal(err)
	}

	item := Item{Platform: "obsidian", Plugin: catalog.Plugin{Repo: "octo/plugin", Name: "Plugin"}}
	input := BuildInput(item, readmeRoot)
	if input.Readme == "" {
		t.Error("readme not loaded")
	}
	if input.Platform != "obsidian" || input.Repo != "octo/plugin" {
		t.Errorf("input = %+v", input)
	}
}

func TestBuildInputMissingReadme(t *testing.T) {
	item := Item{Platform: "obsidian", Plugin: catalog.Plugin{Repo: "octo/plugin"}}
	input := BuildInput(item, t.TempDir())
	if input.Readme != "" {
		t.Errorf("readme = %q, want empty", input.Readme)
	}
}

func TestBuildInputReadmeSuffixFallback(t *testing.T) {
	readmeRoot := t.TempDir()
	dir := filepath.Join(readmeRoot, "vscode")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "12_octo_plugin.md"), []byte("prefixed"), 0o644); err != nil {
		t.Fatal(err)
	}

	item := Item{Platform: "vscode", Plugin: catalog.Plugin{Repo: "octo/plugin"}}
	if input := BuildInput(item, readmeRoot); input.Readme != "prefixed" {
		t.Errorf("readme = %q, want prefixed snapshot content", input.Readme)
	}
}

func TestBuildPrompt(t *testing.T) {
	input := Input{Platform: "vscode", Repo: "a/b", Name: "B", Description: "formats code"}
	prompt, err := BuildPrompt(input)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{
		"GENERIC CATEGORIES:",
		"PLATFORM-SPECIFIC CATEGORIES:",
		"cloud_remote_dev",  // vscode-specific list
		`"repo":"a/b"`,      // payload embedded
		"utilities_misc",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "gameplay_mechanics") {
		t.Error("prompt contains another platform's categories")
	}
}

func TestItemID(t *testing.T) {
	item := Item{Platform: "vscode", Plugin: catalog.Plugin{Repo: "a/b"}}
	if item.ID() != "vscode:a/b" {
		t.Errorf("ID() = %q", item.ID())
	}
}
