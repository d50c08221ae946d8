package datasource

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/newspulse/pkg/models"
)

// DefaultFeeds lists the RSS feeds used when none are configured.
var DefaultFeeds = []string{
	"https://feeds.bbci.co.uk/news/rss.xml",
	"https://feeds.reuters.com/reuters/topNews",
}

// RSS implements article fetching from a set of RSS feeds. It is a
// keyless fallback for deployments without a NewsAPI subscription.
type RSS struct {
	feeds   []string
	parser  *gofeed.Parser
	limiter *RateLimiter
}

// NewRSS creates an RSS source over the given feed URLs. An empty list
// falls back to DefaultFeeds.
func NewRSS(feeds []string) *RSS {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	return &RSS{
		feeds:   feeds,
		parser:  gofeed.NewParser(),
		limiter: NewRateLimiter(2, time.Second), // conservative: 2 req/s
	}
}

// Name returns the data source name.
func (r *RSS) Name() string { return "RSS" }

// FetchArticles fetches all configured feeds and returns items matching
// the query, newest first. Feeds that fail to fetch are skipped.
func (r *RSS) FetchArticles(ctx context.Context, q Query) ([]models.Article, error) {
	terms := splitQueryTerms(q.Query)

	var all []models.Article
	for _, feedURL := range r.feeds {
		articles, err := r.fetchFeed(ctx, feedURL, q.From, terms)
		if err != nil {
			// Non-critical: skip failed feeds.
			continue
		}
		all = append(all, articles...)
	}

	sortArticlesByDate(all)

	if q.PageSize > 0 && len(all) > q.PageSize {
		all = all[:q.PageSize]
	}
	return all, nil
}

// fetchFeed parses one RSS feed and returns matching articles.
func (r *RSS) fetchFeed(ctx context.Context, feedURL string, from time.Time, terms []string) ([]models.Article, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", feedURL, err)
	}

	sourceName := strings.TrimSpace(feed.Title)
	if sourceName == "" {
		sourceName = hostOf(feedURL)
	}

	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		description := cleanHTML(item.Description)
		if len(terms) > 0 && !matchesAny(item.Title+" "+description, terms) {
			continue
		}

		a := models.Article{
			Title:       item.Title,
			Source:      sourceName,
			URL:         item.Link,
			Description: description,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
			// Undated items pass the freshness check; most feeds are
			// newest-first anyway.
			if !from.IsZero() && a.PublishedAt.Before(from) {
				continue
			}
		}
		articles = append(articles, a)
	}

	return articles, nil
}

// --- Internal helpers ---

// splitQueryTerms breaks an OR expression like `technology OR "AI"` into
// lowercase match terms. An empty query yields no terms (match all).
func splitQueryTerms(q string) []string {
	var terms []string
	for _, part := range strings.Split(q, " OR ") {
		term := strings.ToLower(strings.Trim(strings.TrimSpace(part), `"`))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// matchesAny checks if text contains any of the terms (case-insensitive).
func matchesAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// hostOf returns the hostname of a URL, or the URL itself if unparsable.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// sortArticlesByDate sorts articles by published date, newest first.
func sortArticlesByDate(articles []models.Article) {
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
