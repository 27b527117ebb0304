package fetch

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/five82/issuedeck/internal/github"
	"github.com/five82/issuedeck/internal/logging"
)

// Cursor is the controller's bookmark of what has been fetched.
type Cursor struct {
	Sort        string
	Order       string
	Page        int // next page to request; starts at 1
	PageSize    int
	TotalCount  int // last server-reported total
	Loading     bool
	RateLimited bool
}

// Options configure a Controller.
type Options struct {
	Qualifier string
	Sort      string
	Order     string
	PageSize  int
	Logger    *logging.Logger
}

// Request is the single-slot handle for one in-flight page fetch.
type Request struct {
	Generation uint64
	Query      github.SearchQuery
}

// Controller pages through search results and accumulates them.
type Controller struct {
	mu         sync.Mutex
	searcher   github.Searcher
	qualifier  string
	cursor     Cursor
	issues     []github.Issue
	seen       map[int64]struct{}
	generation uint64
	cancel     context.CancelFunc
	log        *logging.Logger
}

const (
	defaultSort     = "created"
	defaultOrder    = "desc"
	defaultPageSize = 50
)

// New creates a Controller positioned before page 1.
func New(searcher github.Searcher, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Controller{
		searcher:  searcher,
		qualifier: opts.Qualifier,
		cursor: Cursor{
			Sort:     opts.Sort,
			Order:    opts.Order,
			Page:     1,
			PageSize: opts.PageSize,
		},
		seen: make(map[int64]struct{}),
		log:  logger,
	}
	if c.cursor.Sort == "" {
		c.cursor.Sort = defaultSort
	}
	if c.cursor.Order == "" {
		c.cursor.Order = defaultOrder
	}
	if c.cursor.PageSize <= 0 {
		c.cursor.PageSize = defaultPageSize
	}
	return c
}

// Next fetches the next page synchronously and returns the issues it added.
// Failures leave the accumulated set and the page untouched, set
// RateLimited, and return an empty increment.
func (c *Controller) Next(ctx context.Context) []github.Issue {
	reqCtx, req := c.Begin(ctx)
	res, err := c.Fetch(reqCtx, req)
	added, ok := c.Complete(req, res, err)
	if !ok {
		return []github.Issue{}
	}
	return added
}

// Begin marks the controller loading and returns the request to run. Any
// request still pending is superseded: its context is cancelled and its
// eventual Complete is ignored.
func (c *Controller) Begin(ctx context.Context) (context.Context, Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.log.Debug("superseding pending page request", "generation", c.generation)
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	c.cursor.Loading = true
	c.cursor.RateLimited = false

	return reqCtx, Request{
		Generation: c.generation,
		Query: github.SearchQuery{
			Qualifier: c.qualifier,
			Sort:      c.cursor.Sort,
			Order:     c.cursor.Order,
			Page:      c.cursor.Page,
			PerPage:   c.cursor.PageSize,
		},
	}
}

// Fetch runs req against the searcher. It does not touch controller state and
// is safe to call from a background goroutine.
func (c *Controller) Fetch(ctx context.Context, req Request) (github.SearchResult, error) {
	if c.searcher == nil {
		return github.SearchResult{}, errors.New("no searcher configured")
	}
	return c.searcher.SearchIssues(ctx, req.Query)
}

// Complete applies the outcome of req. It returns the issues appended and
// ok=false when req was superseded and therefore discarded.
func (c *Controller) Complete(req Request, res github.SearchResult, err error) ([]github.Issue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Generation != c.generation {
		c.log.Debug("discarding superseded page response",
			"generation", req.Generation, "current", c.generation, "page", req.Query.Page)
		return nil, false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.cursor.Loading = false

	if err != nil {
		c.cursor.RateLimited = true
		c.log.Warn("page fetch failed",
			"page", req.Query.Page,
			"rate_limited", errors.Is(err, github.ErrRateLimited),
			"err", err)
		return []github.Issue{}, true
	}

	added := make([]github.Issue, 0, len(res.Items))
	for _, issue := range res.Items {
		if _, dup := c.seen[issue.Number]; dup {
			continue
		}
		c.seen[issue.Number] = struct{}{}
		issue.Favorite = false
		added = append(added, issue)
	}
	c.issues = append(c.issues, added...)
	c.cursor.TotalCount = res.TotalCount
	c.cursor.Page++

	if skipped := len(res.Items) - len(added); skipped > 0 {
		c.log.Info("dropped duplicate issues from page", "page", req.Query.Page, "count", skipped)
	}
	c.log.Debug("page fetched",
		"page", req.Query.Page, "added", len(added), "accumulated", len(c.issues), "total", res.TotalCount)
	return slices.Clone(added), true
}

// Cursor returns a copy of the current cursor.
func (c *Controller) Cursor() Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Issues returns a copy of the accumulated set in arrival order.
func (c *Controller) Issues() []github.Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.issues)
}

// Len returns the number of accumulated issues.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

// Mutate runs fn over the accumulated set under the controller lock. It is
// how flag stamping reaches the authoritative slice.
func (c *Controller) Mutate(fn func(issues []github.Issue)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.issues)
}

// HasMore reports whether the server advertised more results than accumulated.
// Before the first successful page it reports true.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor.Page == 1 {
		return true
	}
	return len(c.issues) < c.cursor.TotalCount
}
