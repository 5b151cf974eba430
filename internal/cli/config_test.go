package cli

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file
	for _, key := range []string{"GH_TOKEN", "GITHUB_TOKEN", "GROQ_API_KEY", "PR_MAX_PAGES", "PR_SLEEP", "STALE_SLEEP", "STALE_PLATFORMS", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxPRPages != 5 {
		t.Errorf("MaxPRPages = %d, want 5", cfg.MaxPRPages)
	}
	if cfg.PRSleep != 500*time.Millisecond {
		t.Errorf("PRSleep = %v, want 500ms", cfg.PRSleep)
	}
	if len(cfg.Platforms) != 9 {
		t.Errorf("Platforms = %v, want all nine", cfg.Platforms)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GH_TOKEN", "ghp_test")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("PR_MAX_PAGES", "3")
	t.Setenv("PR_SLEEP", "0.1")
	t.Setenv("STALE_PLATFORMS", "vscode, obsidian")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GitHubToken != "ghp_test" || cfg.GroqAPIKey != "gsk_test" {
		t.Error("credentials not read from environment")
	}
	if cfg.MaxPRPages != 3 {
		t.Errorf("MaxPRPages = %d, want 3", cfg.MaxPRPages)
	}
	if cfg.PRSleep != 100*time.Millisecond {
		t.Errorf("PRSleep = %v, want 100ms", cfg.PRSleep)
	}
	if len(cfg.Platforms) != 2 || cfg.Platforms[0] != "vscode" || cfg.Platforms[1] != "obsidian" {
		t.Errorf("Platforms = %v", cfg.Platforms)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}

func TestLoadConfigGitHubTokenFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "ghp_fallback")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GitHubToken != "ghp_fallback" {
		t.Errorf("GitHubToken = %q, want GITHUB_TOKEN fallback", cfg.GitHubToken)
	}
}

func TestRequireCredentials(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.RequireGitHubToken(); !errors.Is(err, ErrMissingGitHubToken) {
		t.Errorf("err = %v, want ErrMissingGitHubToken", err)
	}
	if _, err := cfg.RequireGroqKey(); !errors.Is(err, ErrMissingGroqKey) {
		t.Errorf("err = %v, want ErrMissingGroqKey", err)
	}

	cfg = &Config{GitHubToken: "t", GroqAPIKey: "k"}
	if _, err := cfg.RequireGitHubToken(); err != nil {
		t.Errorf("RequireGitHubToken: %v", err)
	}
	if _, err := cfg.RequireGroqKey(); err != nil {
		t.Errorf("RequireGroqKey: %v", err)
	}
}
