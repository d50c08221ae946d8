// Package models defines the core data structures used throughout NewsPulse.
package models

import "time"

// Article is a raw news article as delivered by a news source.
// Instances are immutable and scoped to a single fetch call.
type Article struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Description string    `json:"description"` // empty string when the upstream field is missing
	PublishedAt time.Time `json:"published_at"`
}

// EnrichedArticle is an Article augmented with its sentiment label and
// compound score. The JSON field set is part of the public API contract
// and must not grow without a version bump.
type EnrichedArticle struct {
	Title         string  `json:"title"`
	Source        string  `json:"source"`
	URL           string  `json:"url"`
	Description   string  `json:"description"`
	Sentiment     string  `json:"sentiment"`      // "Positive", "Negative", "Neutral"
	CompoundScore float64 `json:"compound_score"` // in [-1, 1]
}

// TopicSummary aggregates sentiment over one topic's recent articles.
type TopicSummary struct {
	Topic        string    `json:"topic"`
	ArticleCount int       `json:"article_count"`
	MeanScore    float64   `json:"mean_score"`
	Positive     int       `json:"positive"`
	Negative     int       `json:"negative"`
	Neutral      int       `json:"neutral"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// ChatTurn is a single exchange in an interactive chat session.
// Turns live in process memory only, for the lifetime of the session.
type ChatTurn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}
