package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.github.com" {
		t.Fatalf("url = %q, want https://api.github.com/", u.String())
	}

	u, err = parseBaseURL("http://example.com:1234/api/v3?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/v3/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("ghe.local")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "ghe.local" {
		t.Fatalf("url = %q, want https://ghe.local/", u.String())
	}
}

func TestClient_SearchIssuesEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotUserAgent, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_count": 1234,
			"items": [
				{"number": 7, "title": "Fix bug", "state": "open", "created_at": "2024-03-01T10:00:00Z", "html_url": "https://example.com/7"},
				{"number": 8, "title": "Add feature", "state": "closed", "created_at": "2024-03-02T10:00:00Z"}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v3")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	res, err := c.SearchIssues(ctx, SearchQuery{
		Qualifier: "repo:angular/components",
		Sort:      "created",
		Order:     "desc",
		Page:      3,
		PerPage:   500,
	})
	if err != nil {
		t.Fatalf("SearchIssues returned error: %v", err)
	}

	if gotPath != "/api/v3/search/issues" {
		t.Fatalf("path = %q, want /api/v3/search/issues", gotPath)
	}
	if gotQuery.Get("q") != "repo:angular/components" ||
		gotQuery.Get("sort") != "created" ||
		gotQuery.Get("order") != "desc" ||
		gotQuery.Get("page") != "3" ||
		gotQuery.Get("per_page") != "100" {
		t.Fatalf("query = %v, want params encoded with per_page clamped", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "issuedeck/") {
		t.Fatalf("User-Agent = %q, want issuedeck/*", gotUserAgent)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Fatalf("Accept = %q", gotAccept)
	}

	if res.TotalCount != 1234 || len(res.Items) != 2 {
		t.Fatalf("result = %#v, want total 1234 with 2 items", res)
	}
	first := res.Items[0]
	if first.Number != 7 || first.Title != "Fix bug" || first.Kind() != StateOpen {
		t.Fatalf("first item = %#v", first)
	}
	if !first.CreatedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("CreatedAt = %v", first.CreatedAt)
	}
	if first.Favorite {
		t.Fatalf("Favorite must never be decoded from the wire")
	}
	if res.Items[1].Kind() != StateClosed {
		t.Fatalf("second item state = %q, want closed", res.Items[1].Kind())
	}
}

func TestClient_SearchIssuesValidatesInput(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.SearchIssues(context.Background(), SearchQuery{Qualifier: "repo:a/b"}); err == nil {
		t.Fatalf("SearchIssues with page 0 returned nil error")
	}
	if _, err := c.SearchIssues(context.Background(), SearchQuery{Page: 1}); err == nil {
		t.Fatalf("SearchIssues without qualifier returned nil error")
	}
}

func TestClient_EmptyItemsDecodeAsEmptySlice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"total_count": 0})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	res, err := c.SearchIssues(context.Background(), SearchQuery{Qualifier: "repo:a/b", Page: 1})
	if err != nil {
		t.Fatalf("SearchIssues returned error: %v", err)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("Items = %#v, want empty non-nil slice", res.Items)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("X-RateLimit-Remaining", "0")
			http.Error(w, "quota", http.StatusForbidden)
		case "2":
			http.Error(w, "slow down", http.StatusTooManyRequests)
		case "3":
			http.Error(w, "forbidden", http.StatusForbidden)
		case "4":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	search := func(page int) error {
		_, err := c.SearchIssues(context.Background(), SearchQuery{Qualifier: "repo:a/b", Page: page})
		return err
	}

	if err := search(1); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("page 1 error = %v, want ErrRateLimited", err)
	}
	if err := search(2); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("page 2 error = %v, want ErrRateLimited", err)
	}
	if err := search(3); err == nil || errors.Is(err, ErrRateLimited) {
		t.Fatalf("page 3 error = %v, want plain status error", err)
	}
	if err := search(4); err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("page 4 error = %v, want decode response error", err)
	}
	if err := search(5); err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("page 5 error = %v, want status 500 error", err)
	}
}

func TestClient_RequestIntervalHonorsContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_count":0,"items":[]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRequestInterval(time.Hour))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	q := SearchQuery{Qualifier: "repo:a/b", Page: 1}
	if _, err := c.SearchIssues(context.Background(), q); err != nil {
		t.Fatalf("first SearchIssues returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.SearchIssues(ctx, q); err == nil || !strings.Contains(err.Error(), "wait for request slot") {
		t.Fatalf("second SearchIssues error = %v, want limiter wait error", err)
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		raw  string
		want IssueState
	}{
		{"", ""},
		{"open", StateOpen},
		{" OPEN ", StateOpen},
		{"closed", StateClosed},
		{"locked", StateOther},
	}
	for _, tt := range tests {
		if got := ParseState(tt.raw); got != tt.want {
			t.Errorf("ParseState(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
	if got := (Issue{}).Kind(); got != StateOther {
		t.Errorf("Kind() of empty state = %q, want other", got)
	}
}
