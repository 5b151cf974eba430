// Package httputil provides the retry and caching infrastructure shared by
// every external API client.
//
// [Retry] wraps a call with exponential backoff. Clients classify failures at
// the point they occur: transient ones (timeouts, 5xx, truncated payloads)
// are wrapped with [RetryableError] and retried, everything else aborts the
// call immediately. Rate limiting is deliberately not retryable here; the
// batch driver decides whether a rate-limited run should continue.
//
// [Cache] stores JSON responses on disk (~/.cache/pluginhub/) with a TTL, so
// repeated pipeline runs do not hammer the registries. The cache can be
// cleared with `pluginhub cache clear`.
package httputil
