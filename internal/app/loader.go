package app

import (
	"context"
	"fmt"

	"github.com/five82/issuedeck/internal/state"
)

// LoadPages issues up to pages load-more events back to back. It stops early
// when the server has nothing more, when the context ends, or when a page
// fails. A failed page is reported as an error carrying the snapshot's
// LastError; the store itself stays usable.
func LoadPages(ctx context.Context, store *state.Store, pages int) (int, error) {
	loaded := 0
	for loaded < pages {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		if !store.Snapshot().HasMore() {
			return loaded, nil
		}
		store.LoadMore(ctx)
		snap := store.Snapshot()
		if snap.RateLimited {
			return loaded, fmt.Errorf("page %d: %w", snap.Page, snap.LastError)
		}
		loaded++
	}
	return loaded, nil
}
