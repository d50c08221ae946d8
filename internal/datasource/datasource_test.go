package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/seenimoa/newspulse/pkg/models"
)

var (
	_ Source = (*NewsAPI)(nil)
	_ Source = (*RSS)(nil)
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(1 * time.Second)

	// Set a value.
	c.Set("key1", "value1")
	v, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if v != "value1" {
		t.Fatalf("got %v, want value1", v)
	}
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(1 * time.Second)
	_, ok := c.Get("nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(1 * time.Millisecond)
	c.Set("key", "val")

	// Wait for expiry.
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("key")
	if ok {
		t.Fatal("expected cache miss after TTL expiry")
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	c := NewCache(1 * time.Hour) // default long TTL.
	c.SetWithTTL("quick", "val", 1*time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("quick")
	if ok {
		t.Fatal("expected cache miss after custom TTL expiry")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(1 * time.Hour)
	c.Set("key", "val")
	c.Invalidate("key")
	_, ok := c.Get("key")
	if ok {
		t.Fatal("expected cache miss after invalidation")
	}
}

func TestCacheFlush(t *testing.T) {
	c := NewCache(1 * time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Flush()
	_, okA := c.Get("a")
	_, okB := c.Get("b")
	if okA || okB {
		t.Fatal("expected all entries flushed")
	}
}

func TestCacheCleanup(t *testing.T) {
	c := NewCache(1 * time.Millisecond)
	c.Set("expired", "val")
	time.Sleep(5 * time.Millisecond)

	c.Set("fresh", "val2")
	c.Cleanup()

	_, okExpired := c.Get("expired")
	_, okFresh := c.Get("fresh")
	if okExpired {
		t.Fatal("expected expired entry to be cleaned up")
	}
	if !okFresh {
		t.Fatal("expected fresh entry to survive cleanup")
	}
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)
	ctx := context.Background()

	// Should allow 3 immediate calls.
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait() #%d failed: %v", i, err)
		}
	}
}

func TestRateLimiterCancelledContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour) // 1 token, very slow refill.
	ctx := context.Background()

	// Use the single token.
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}

	// Next call with cancelled context should fail.
	ctx2, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := rl.Wait(ctx2)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestErrHTTPError(t *testing.T) {
	e := &ErrHTTP{StatusCode: 404, Status: "404 Not Found", Body: "page not found"}
	msg := e.Error()
	if msg != "HTTP 404 404 Not Found: page not found" {
		t.Fatalf("unexpected error message: %s", msg)
	}
}

func TestSplitQueryTerms(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"technology OR tech OR AI", []string{"technology", "tech", "ai"}},
		{`"artificial intelligence" OR AI`, []string{"artificial intelligence", "ai"}},
		{"health", []string{"health"}},
		{"", nil},
		{"  ", nil},
	}
	for _, tt := range tests {
		got := splitQueryTerms(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitQueryTerms(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitQueryTerms(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		text  string
		terms []string
		want  bool
	}{
		{"New AI model released", []string{"ai"}, true},
		{"Quarterly earnings beat estimates", []string{"technology", "tech"}, false},
		{"Tech layoffs continue", []string{"technology", "tech"}, true},
		{"", []string{"a"}, false},
		{"CASE INSENSITIVE", []string{"insensitive"}, true},
	}
	for _, tt := range tests {
		got := matchesAny(tt.text, tt.terms)
		if got != tt.want {
			t.Errorf("matchesAny(%q, %v) = %v, want %v", tt.text, tt.terms, got, tt.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"", ""},
		{"  <div> padded </div>  ", "padded"},
	}
	for _, tt := range tests {
		got := cleanHTML(tt.input)
		if got != tt.want {
			t.Errorf("cleanHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHostOf(t *testing.T) {
	if got := hostOf("https://feeds.bbci.co.uk/news/rss.xml"); got != "feeds.bbci.co.uk" {
		t.Errorf("hostOf: got %q", got)
	}
	if got := hostOf("not a url"); got != "not a url" {
		t.Errorf("hostOf fallback: got %q", got)
	}
}

func TestSortArticlesByDate(t *testing.T) {
	now := time.Now()
	articles := []models.Article{
		{Title: "old", PublishedAt: now.Add(-2 * time.Hour)},
		{Title: "newest", PublishedAt: now},
		{Title: "middle", PublishedAt: now.Add(-1 * time.Hour)},
	}
	sortArticlesByDate(articles)

	want := []string{"newest", "middle", "old"}
	for i, title := range want {
		if articles[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, articles[i].Title, title)
		}
	}
}
