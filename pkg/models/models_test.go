package models

import (
	"encoding/json"
	"testing"
	"time"
)

// ── Article Tests ──

func TestArticleJSONShape(t *testing.T) {
	a := Article{
		Title:       "Solar output hits new record",
		Source:      "Wire Service",
		URL:         "https://example.com/solar",
		Description: "Grid operators report record generation.",
		PublishedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("json.Marshal(Article) error: %v", err)
	}
	var decoded Article
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(Article) error: %v", err)
	}
	if decoded != a {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, a)
	}
}

func TestArticleEmptyDescription(t *testing.T) {
	data, _ := json.Marshal(Article{Title: "t", Source: "s", URL: "u"})
	var m map[string]any
	json.Unmarshal(data, &m)

	// description stays present as "" so API consumers see a stable shape.
	v, ok := m["description"]
	if !ok {
		t.Fatal("description key dropped from JSON")
	}
	if v != "" {
		t.Errorf("description = %v, want empty string", v)
	}
}

// ── EnrichedArticle Tests ──

func TestEnrichedArticleExactKeys(t *testing.T) {
	e := EnrichedArticle{
		Title:         "Markets rally on earnings",
		Source:        "Wire Service",
		URL:           "https://example.com/rally",
		Description:   "Broad gains across sectors.",
		Sentiment:     "Positive",
		CompoundScore: 0.62,
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("json.Marshal(EnrichedArticle) error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("json.Unmarshal error: %v", err)
	}

	want := []string{"title", "source", "url", "description", "sentiment", "compound_score"}
	if len(m) != len(want) {
		t.Fatalf("got %d JSON keys, want %d: %v", len(m), len(want), m)
	}
	for _, key := range want {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON key %q", key)
		}
	}
}

func TestEnrichedArticleScoreZero(t *testing.T) {
	data, _ := json.Marshal(EnrichedArticle{Sentiment: "Neutral"})
	var m map[string]any
	json.Unmarshal(data, &m)

	// compound_score must encode for neutral articles too.
	score, ok := m["compound_score"]
	if !ok {
		t.Fatal("compound_score key dropped from JSON")
	}
	if score != 0.0 {
		t.Errorf("compound_score = %v, want 0", score)
	}
}

// ── TopicSummary Tests ──

func TestTopicSummaryJSON(t *testing.T) {
	s := TopicSummary{
		Topic:        "technology",
		ArticleCount: 10,
		MeanScore:    0.12,
		Positive:     4,
		Negative:     3,
		Neutral:      3,
		FetchedAt:    time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	data, _ := json.Marshal(s)
	var decoded TopicSummary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(TopicSummary) error: %v", err)
	}
	if decoded != s {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, s)
	}
	if got := decoded.Positive + decoded.Negative + decoded.Neutral; got != decoded.ArticleCount {
		t.Errorf("label counts sum to %d, want %d", got, decoded.ArticleCount)
	}
}

// ── ChatTurn Tests ──

func TestChatTurnRoles(t *testing.T) {
	turns := []ChatTurn{
		{Role: "user", Text: "What moved markets today?"},
		{Role: "assistant", Text: "Mostly earnings reports."},
	}
	data, _ := json.Marshal(turns)
	var decoded []ChatTurn
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal([]ChatTurn) error: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Role != "user" || decoded[1].Role != "assistant" {
		t.Errorf("roundtrip mismatch: %+v", decoded)
	}
}
