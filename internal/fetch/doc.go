// Package fetch implements the page-fetch controller.
//
// A Controller owns the page cursor and the accumulated, append-only issue
// list for one session. Each load-more trigger becomes exactly one search
// request for the cursor's current page.
//
// # Request lifecycle
//
//	ctx, req := ctrl.Begin(parent)     // Loading=true, RateLimited=false, generation++
//	res, err := ctrl.Fetch(ctx, req)   // network, no controller state touched
//	added, ok := ctrl.Complete(req, res, err)
//
// Next wraps all three for synchronous callers.
//
// Only the most recent Begin is live. An older request's context is
// cancelled and its Complete is discarded (ok=false), so pages can never be
// appended out of order.
//
// # Failure
//
// Any error, rate limiting included, clears Loading, sets RateLimited, and
// leaves both the page number and the accumulated list unchanged. Nothing is
// retried; the next load-more trigger asks for the same page again.
//
// # Duplicates
//
// Issue numbers already accumulated are dropped from later pages. Search
// results can shift between requests when issues are created upstream, and
// the accumulated list must never hold the same number twice.
package fetch
