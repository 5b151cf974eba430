package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/oss-plugin-hub/pluginhub/pkg/httputil"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a repository or package doesn't exist.
	// Pipelines treat it as "no data", not as a failure.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned for 403/429 responses. It is never retried
	// at the HTTP layer; the batch driver decides whether to abort the run.
	ErrRateLimited = errors.New("rate limited")

	// ErrNetwork is returned for transport failures and 5xx responses.
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the standard per-request timeout.
// A timeout is treated like any other transport error: retryable, then
// terminal for the item.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates the shared file-based response cache with the given TTL.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}

var repoURLPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com[/:]([^/\s]+)/([^/\s?#]+?)(?:\.git)?(?:[/?#]|$)`)

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts git@, git:// and git+ repository URL forms to
// canonical HTTPS and strips a trailing .git. Returns "" for empty input.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	return strings.TrimSuffix(s, ".git")
}

// ParseRepoRef extracts "owner/name" from a repository reference, accepting
// plain owner/name as well as full GitHub URLs. Returns ok=false when the
// reference does not point at a GitHub repository.
func ParseRepoRef(ref string) (owner, name string, ok bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", false
	}
	if m := repoURLPattern.FindStringSubmatch(ref); len(m) == 3 {
		return m[1], m[2], true
	}
	ref = strings.TrimSuffix(ref, ".git")
	parts := strings.Split(ref, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func statusError(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusForbidden || code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, code)
	case code >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
