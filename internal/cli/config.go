package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
)

// Config carries credentials and numeric tuning for the pipelines.
// Precedence, lowest to highest: built-in defaults, the optional TOML file
// at ~/.config/pluginhub/config.toml, environment variables (a local .env
// file is loaded into the environment first). Credentials only ever come
// from the environment.
type Config struct {
	GitHubToken string
	GroqAPIKey  string

	GroqModel  string        `toml:"groq_model"`
	MaxPRPages int           `toml:"max_pr_pages"`
	PRSleep    time.Duration `toml:"-"`
	StaleSleep time.Duration `toml:"-"`
	ItemSleep  time.Duration `toml:"-"`
	Platforms  []string      `toml:"platforms"`
	RedisAddr  string        `toml:"redis_addr"`
	CacheTTL   time.Duration `toml:"-"`

	// Seconds-valued knobs as they appear in the file; folded into the
	// duration fields after decoding.
	PRSleepSeconds    float64 `toml:"pr_sleep_seconds"`
	StaleSleepSeconds float64 `toml:"stale_sleep_seconds"`
	ItemSleepSeconds  float64 `toml:"item_sleep_seconds"`
	CacheTTLHours     float64 `toml:"cache_ttl_hours"`
}

// Missing-credential errors abort a pipeline before any work begins.
var (
	ErrMissingGitHubToken = errors.New("GH_TOKEN (or GITHUB_TOKEN) is not set")
	ErrMissingGroqKey     = errors.New("GROQ_API_KEY is not set")
)

// LoadConfig assembles the configuration. A missing .env or TOML file is
// fine; a malformed TOML file is not.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GroqModel:  "",
		MaxPRPages: 5,
		PRSleep:    500 * time.Millisecond,
		StaleSleep: 0,
		ItemSleep:  200 * time.Millisecond,
		Platforms:  catalog.Platforms,
		CacheTTL:   24 * time.Hour,
	}

	if path, err := configPath(); err == nil {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
			if cfg.PRSleepSeconds > 0 {
				cfg.PRSleep = secondsToDuration(cfg.PRSleepSeconds)
			}
			if cfg.StaleSleepSeconds > 0 {
				cfg.StaleSleep = secondsToDuration(cfg.StaleSleepSeconds)
			}
			if cfg.ItemSleepSeconds > 0 {
				cfg.ItemSleep = secondsToDuration(cfg.ItemSleepSeconds)
			}
			if cfg.CacheTTLHours > 0 {
				cfg.CacheTTL = time.Duration(cfg.CacheTTLHours * float64(time.Hour))
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	if v := os.Getenv("GH_TOKEN"); v != "" {
		cfg.GitHubToken = v
	} else if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHubToken = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.GroqAPIKey = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.GroqModel = v
	}
	if v := os.Getenv("PR_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxPRPages = n
		}
	}
	if v := os.Getenv("PR_SLEEP"); v != "" {
		if s, err := strconv.ParseFloat(v, 64); err == nil && s >= 0 {
			cfg.PRSleep = secondsToDuration(s)
		}
	}
	if v := os.Getenv("STALE_SLEEP"); v != "" {
		if s, err := strconv.ParseFloat(v, 64); err == nil && s >= 0 {
			cfg.StaleSleep = secondsToDuration(s)
		}
	}
	if v := os.Getenv("STALE_PLATFORMS"); v != "" {
		cfg.Platforms = splitPlatforms(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
}

// RequireGitHubToken returns the token or the fatal configuration error.
func (cfg *Config) RequireGitHubToken() (string, error) {
	if cfg.GitHubToken == "" {
		return "", ErrMissingGitHubToken
	}
	return cfg.GitHubToken, nil
}

// RequireGroqKey returns the API key or the fatal configuration error.
func (cfg *Config) RequireGroqKey() (string, error) {
	if cfg.GroqAPIKey == "" {
		return "", ErrMissingGroqKey
	}
	return cfg.GroqAPIKey, nil
}

func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func splitPlatforms(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
