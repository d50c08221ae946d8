// Package digest renders a scored article batch for CLI consumption,
// either as markdown or as a plain terminal table.
package digest

import (
	"fmt"
	"strings"

	"github.com/seenimoa/newspulse/pkg/models"
	"github.com/seenimoa/newspulse/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Configuration
// ════════════════════════════════════════════════════════════════════

// Config controls digest rendering.
type Config struct {
	Title     string // custom title (default: "News Digest — <topic>")
	MaxItems  int    // cap per sentiment group, 0 = no cap
	ShowLinks bool   // render titles as markdown links
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ShowLinks: true,
	}
}

// sentiment groups in display order. Positive first: a digest leads with
// the good news.
var groupOrder = []string{"Positive", "Negative", "Neutral"}

// ════════════════════════════════════════════════════════════════════
// Markdown renderer
// ════════════════════════════════════════════════════════════════════

// Markdown renders the batch as a markdown digest, grouped by sentiment
// label with source order preserved inside each group.
func Markdown(summary models.TopicSummary, articles []models.EnrichedArticle, cfg Config) string {
	var sb strings.Builder

	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("News Digest — %s", summary.Topic)
	}
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(fmt.Sprintf("_Generated %s_\n\n", utils.FormatDateTime(summary.FetchedAt)))

	if len(articles) == 0 {
		sb.WriteString("_No recent articles found._\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("**%d articles · mean score %+.2f · %d positive / %d negative / %d neutral**\n",
		summary.ArticleCount, summary.MeanScore, summary.Positive, summary.Negative, summary.Neutral))

	for _, label := range groupOrder {
		group := filterByLabel(articles, label, cfg.MaxItems)
		if len(group) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", label))
		for _, art := range group {
			sb.WriteString(markdownItem(art, cfg.ShowLinks))
		}
	}

	return sb.String()
}

func markdownItem(art models.EnrichedArticle, withLink bool) string {
	var sb strings.Builder

	if withLink && art.URL != "" {
		sb.WriteString(fmt.Sprintf("- **[%s](%s)**", art.Title, art.URL))
	} else {
		sb.WriteString(fmt.Sprintf("- **%s**", art.Title))
	}
	sb.WriteString(fmt.Sprintf(" — %s (%+.2f)\n", art.Source, art.CompoundScore))

	if desc := strings.TrimSpace(art.Description); desc != "" {
		sb.WriteString(fmt.Sprintf("  > %s\n", desc))
	}
	return sb.String()
}

func filterByLabel(articles []models.EnrichedArticle, label string, max int) []models.EnrichedArticle {
	var group []models.EnrichedArticle
	for _, art := range articles {
		if art.Sentiment != label {
			continue
		}
		group = append(group, art)
		if max > 0 && len(group) == max {
			break
		}
	}
	return group
}

// ════════════════════════════════════════════════════════════════════
// Terminal renderer
// ════════════════════════════════════════════════════════════════════

// Text renders the batch as a terminal table in source order.
func Text(summary models.TopicSummary, articles []models.EnrichedArticle) string {
	var sb strings.Builder
	line := strings.Repeat("═", 72)
	thinLine := strings.Repeat("─", 72)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  NEWS — %s\n", strings.ToUpper(summary.Topic)))
	sb.WriteString(fmt.Sprintf("  Generated: %s\n", utils.FormatDateTime(summary.FetchedAt)))
	sb.WriteString(line + "\n")

	if len(articles) == 0 {
		sb.WriteString("  No recent articles found.\n")
		sb.WriteString(line + "\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("  %d articles | mean %+.2f | %d positive / %d negative / %d neutral\n",
		summary.ArticleCount, summary.MeanScore, summary.Positive, summary.Negative, summary.Neutral))
	sb.WriteString(thinLine + "\n")

	for i, art := range articles {
		sb.WriteString(fmt.Sprintf("  %2d. [%s %+.2f] %s\n", i+1, sentimentMark(art.Sentiment), art.CompoundScore, utils.Truncate(art.Title, 58)))
		sb.WriteString(fmt.Sprintf("      %s", art.Source))
		if art.URL != "" {
			sb.WriteString("  " + art.URL)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(line + "\n")

	return sb.String()
}

func sentimentMark(label string) string {
	switch label {
	case "Positive":
		return "+"
	case "Negative":
		return "-"
	default:
		return "·"
	}
}
