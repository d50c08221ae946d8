package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Example Wire</title>
<link>https://example.com</link>
<description>Test feed</description>
<item>
  <title>Markets steady after tech rally</title>
  <link>https://example.com/a</link>
  <description><![CDATA[<p>Shares of <b>technology</b> firms held gains.</p>]]></description>
  <pubDate>Fri, 14 Mar 2025 10:00:00 GMT</pubDate>
</item>
<item>
  <title>New stadium opens downtown</title>
  <link>https://example.com/b</link>
  <description>The arena hosted its first match.</description>
  <pubDate>Fri, 14 Mar 2025 08:00:00 GMT</pubDate>
</item>
<item>
  <title>Old technology story</title>
  <link>https://example.com/c</link>
  <description>From last week.</description>
  <pubDate>Fri, 07 Mar 2025 10:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeedXML)
	}))
}

func TestRSSFetchArticles(t *testing.T) {
	server := newFeedServer(t)
	defer server.Close()

	r := NewRSS([]string{server.URL})
	articles, err := r.FetchArticles(context.Background(), Query{})
	if err != nil {
		t.Fatalf("FetchArticles() error: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(articles))
	}

	// Source name comes from the feed title.
	if articles[0].Source != "Example Wire" {
		t.Errorf("Source: got %q, want %q", articles[0].Source, "Example Wire")
	}

	// Newest first.
	if articles[0].Title != "Markets steady after tech rally" {
		t.Errorf("first article: got %q", articles[0].Title)
	}
	if articles[2].Title != "Old technology story" {
		t.Errorf("last article: got %q", articles[2].Title)
	}

	// HTML stripped from descriptions.
	if articles[0].Description != "Shares of technology firms held gains." {
		t.Errorf("Description: got %q", articles[0].Description)
	}
}

func TestRSSFiltersByQuery(t *testing.T) {
	server := newFeedServer(t)
	defer server.Close()

	r := NewRSS([]string{server.URL})
	articles, err := r.FetchArticles(context.Background(), Query{Query: "technology OR tech"})
	if err != nil {
		t.Fatalf("FetchArticles() error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 matching the query", len(articles))
	}
	for _, a := range articles {
		if a.Title == "New stadium opens downtown" {
			t.Errorf("non-matching article should be filtered out")
		}
	}
}

func TestRSSFreshnessBound(t *testing.T) {
	server := newFeedServer(t)
	defer server.Close()

	from := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	r := NewRSS([]string{server.URL})
	articles, err := r.FetchArticles(context.Background(), Query{From: from})
	if err != nil {
		t.Fatalf("FetchArticles() error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 within the window", len(articles))
	}
	for _, a := range articles {
		if a.PublishedAt.Before(from) {
			t.Errorf("article %q published %v, before bound %v", a.Title, a.PublishedAt, from)
		}
	}
}

func TestRSSPageSizeCap(t *testing.T) {
	server := newFeedServer(t)
	defer server.Close()

	r := NewRSS([]string{server.URL})
	articles, err := r.FetchArticles(context.Background(), Query{PageSize: 1})
	if err != nil {
		t.Fatalf("FetchArticles() error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	// The cap keeps the newest.
	if articles[0].Title != "Markets steady after tech rally" {
		t.Errorf("capped result: got %q", articles[0].Title)
	}
}

func TestRSSSkipsFailedFeeds(t *testing.T) {
	good := newFeedServer(t)
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusInternalServerError)
	}))
	defer bad.Close()

	r := NewRSS([]string{bad.URL, good.URL})
	articles, err := r.FetchArticles(context.Background(), Query{})
	if err != nil {
		t.Fatalf("FetchArticles() should not fail when one feed is down: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("got %d articles from surviving feed, want 3", len(articles))
	}
}

func TestRSSDefaultFeeds(t *testing.T) {
	r := NewRSS(nil)
	if len(r.feeds) == 0 {
		t.Fatal("empty feed list should fall back to defaults")
	}
}
