// Package integrations holds the clients for the external services the
// enrichment pipelines consume: the GitHub REST API, the npm registry, the
// OSV vulnerability database, the OpenSSF Scorecard API and the Groq chat
// completion API.
//
// All clients embed the shared [Client], which layers response caching and
// retry/backoff over net/http and maps HTTP statuses onto the pipeline error
// taxonomy: 404 becomes [ErrNotFound] (no data, not a failure), 403/429
// become [ErrRateLimited] (propagated so the driver can abort the run), 5xx
// and transport errors are retried, and anything else fails the item.
// Responses are decoded into typed structs at this boundary; dynamic maps do
// not leak into the pipelines.
package integrations
