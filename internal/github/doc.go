// Package github provides an HTTP client for the GitHub issue search API.
//
// # Overview
//
// The package wraps a single read-only endpoint, GET /search/issues, and the
// subset of its JSON payload issuedeck cares about. It handles URL building,
// headers, status classification, and JSON decoding.
//
// # Client Usage
//
//	client, err := github.NewClient("https://api.github.com",
//		github.WithRequestInterval(500*time.Millisecond))
//	if err != nil {
//		return err
//	}
//
//	page, err := client.SearchIssues(ctx, github.SearchQuery{
//		Qualifier: "repo:angular/components",
//		Sort:      "created",
//		Order:     "desc",
//		Page:      1,
//		PerPage:   50,
//	})
//
// # Errors
//
// Transport failures, HTTP status >= 400, and malformed bodies all come back
// as ordinary errors. Quota rejections (429, or 403 with
// X-RateLimit-Remaining: 0) additionally wrap ErrRateLimited so log lines can
// say why; callers are not required to distinguish them.
//
// # Request Spacing
//
// WithRequestInterval installs a golang.org/x/time/rate limiter with burst 1.
// Each request waits for its slot (honoring context cancellation). There is
// no retry: a failed request is reported once and the caller decides what to do.
//
// # Testing
//
// The Searcher interface is what the fetch controller depends on; tests use
// httptest servers against the real Client or a fake Searcher.
package github
