package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/newspulse/internal/datasource"
	"github.com/seenimoa/newspulse/internal/logging"
	"github.com/seenimoa/newspulse/internal/topics"
	"github.com/seenimoa/newspulse/pkg/models"
)

// DefaultTrendingTTL is how long a computed overview is served from cache.
const DefaultTrendingTTL = 5 * time.Minute

const overviewCacheKey = "trending:overview"

// Trending computes a cross-topic sentiment overview by running the
// fetch-and-score cycle for every configured topic concurrently.
// Results are cached for a short TTL since the overview fans out one
// upstream request per topic.
type Trending struct {
	analyzer *Analyzer
	cache    *datasource.Cache
	ttl      time.Duration
	log      *logging.Logger
}

// NewTrending creates a Trending service over the given analyzer.
// A non-positive ttl falls back to DefaultTrendingTTL.
func NewTrending(analyzer *Analyzer, ttl time.Duration) *Trending {
	if ttl <= 0 {
		ttl = DefaultTrendingTTL
	}
	return &Trending{
		analyzer: analyzer,
		cache:    datasource.NewCache(ttl),
		ttl:      ttl,
		log:      logging.New("pipeline"),
	}
}

// Overview returns one summary per configured topic, most positive mean
// score first. The second return reports whether this call computed a
// fresh overview rather than serving the cached one, so callers can
// push updates only when there is new data. Per-topic failures are
// non-fatal: a failed topic appears with zero counts, same as a topic
// with no recent articles.
func (t *Trending) Overview(ctx context.Context) ([]models.TopicSummary, bool) {
	if cached, ok := t.cache.Get(overviewCacheKey); ok {
		return cached.([]models.TopicSummary), false
	}

	keys := topics.Keys()
	summaries := make([]models.TopicSummary, 0, len(keys))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, key := range keys {
		key := key // per-iteration copy; required for go < 1.22 loop semantics
		g.Go(func() error {
			batch := t.analyzer.FetchAndScore(gctx, key)
			summary := Summarize(key, batch)
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil // FetchAndScore already absorbed any failure
		})
	}

	// No goroutine returns an error; Wait only observes ctx cancellation.
	if err := g.Wait(); err != nil {
		t.log.Errorf("trending overview interrupted: %v", err)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].MeanScore != summaries[j].MeanScore {
			return summaries[i].MeanScore > summaries[j].MeanScore
		}
		return summaries[i].Topic < summaries[j].Topic
	})

	t.cache.SetWithTTL(overviewCacheKey, summaries, t.ttl)
	return summaries, true
}

// Invalidate drops the cached overview so the next call recomputes it.
func (t *Trending) Invalidate() {
	t.cache.Invalidate(overviewCacheKey)
}
