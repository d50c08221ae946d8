// Package pipeline runs the fetch-and-score cycle: resolve a topic to a
// search expression, pull recent articles from a news source, and attach
// a sentiment label and compound score to each.
package pipeline

import (
	"context"
	"time"

	"github.com/seenimoa/newspulse/internal/analysis/sentiment"
	"github.com/seenimoa/newspulse/internal/datasource"
	"github.com/seenimoa/newspulse/internal/logging"
	"github.com/seenimoa/newspulse/internal/topics"
	"github.com/seenimoa/newspulse/pkg/models"
	"github.com/seenimoa/newspulse/pkg/utils"
)

// Analyzer fetches recent articles for a topic and scores each headline.
// Both collaborators are injected so tests can substitute stubs.
type Analyzer struct {
	source   datasource.Source
	scorer   sentiment.Scorer
	language string
	pageSize int
	window   time.Duration
	log      *logging.Logger
}

// AnalyzerOption customizes an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLanguage sets the article language filter (default "en").
func WithLanguage(lang string) AnalyzerOption {
	return func(a *Analyzer) {
		if lang != "" {
			a.language = lang
		}
	}
}

// WithPageSize sets how many articles to request per fetch (default 10).
func WithPageSize(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.pageSize = n
		}
	}
}

// WithFreshnessWindow sets how far back fetches reach (default 24h).
func WithFreshnessWindow(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		if d > 0 {
			a.window = d
		}
	}
}

// NewAnalyzer creates an Analyzer over the given source and scorer.
func NewAnalyzer(source datasource.Source, scorer sentiment.Scorer, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		source:   source,
		scorer:   scorer,
		language: "en",
		pageSize: 10,
		window:   utils.DefaultFreshnessWindow,
		log:      logging.New("pipeline"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchAndScore runs one cycle for topicKey and returns the scored batch in
// source order (newest first). All failures collapse to an empty, non-nil
// slice: a fetch error and "no recent articles" are indistinguishable to the
// caller and diagnosed through logs only.
func (a *Analyzer) FetchAndScore(ctx context.Context, topicKey string) []models.EnrichedArticle {
	topic := topics.Canonical(topicKey)
	query := datasource.Query{
		Query:    topics.Resolve(topicKey),
		Language: a.language,
		From:     utils.FreshnessBound(a.window),
		PageSize: a.pageSize,
	}

	articles, err := a.source.FetchArticles(ctx, query)
	if err != nil {
		a.log.Errorf("fetch failed for topic %q via %s: %v", topic, a.source.Name(), err)
		return []models.EnrichedArticle{}
	}
	a.log.Infof("fetched %d articles for topic %q via %s", len(articles), topic, a.source.Name())

	enriched := make([]models.EnrichedArticle, 0, len(articles))
	for _, art := range articles {
		score, err := a.scorer.Score(art.Title)
		if err != nil {
			a.log.Warnf("scoring failed for %q: %v", art.Title, err)
			continue
		}
		enriched = append(enriched, models.EnrichedArticle{
			Title:         art.Title,
			Source:        art.Source,
			URL:           art.URL,
			Description:   art.Description,
			Sentiment:     sentiment.Classify(score).String(),
			CompoundScore: score,
		})
	}
	return enriched
}

// Summarize aggregates a scored batch into a per-topic summary.
// An empty batch yields zero counts and a zero mean.
func Summarize(topic string, articles []models.EnrichedArticle) models.TopicSummary {
	s := models.TopicSummary{
		Topic:        topic,
		ArticleCount: len(articles),
		FetchedAt:    time.Now(),
	}
	if len(articles) == 0 {
		return s
	}

	var total float64
	for _, art := range articles {
		total += art.CompoundScore
		switch art.Sentiment {
		case sentiment.Positive.String():
			s.Positive++
		case sentiment.Negative.String():
			s.Negative++
		default:
			s.Neutral++
		}
	}
	s.MeanScore = total / float64(len(articles))
	return s
}
