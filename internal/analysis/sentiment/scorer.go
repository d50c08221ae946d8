// Package sentiment provides offline sentiment scoring and threshold
// classification for news headlines.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Scorer produces a compound polarity score in [-1, 1] for a piece of text.
// Implementations must be deterministic for identical input and safe for
// concurrent use.
type Scorer interface {
	Score(text string) (float64, error)
}

// LexiconScorer scores text with a weighted keyword lexicon, negation
// flips, and intensity modifiers. Fully offline, no shared mutable state.
// The error result is always nil; it exists so model-backed scorers can
// satisfy the same interface.
type LexiconScorer struct{}

// NewLexiconScorer returns the default offline scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

var _ Scorer = (*LexiconScorer)(nil)

// normalizationAlpha controls how quickly summed word valences saturate
// toward the ±1 bounds.
const normalizationAlpha = 15.0

// negationFactor applies when a sentiment word follows a negator: the
// valence flips sign and loses a quarter of its magnitude.
const negationFactor = -0.75

// negationWindow is how many tokens back a negator or booster still applies.
const negationWindow = 2

// Score returns the compound polarity of text in [-1, 1]. Text with no
// lexicon hits scores exactly 0.
func (s *LexiconScorer) Score(text string) (float64, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, nil
	}

	sum := 0.0
	i := 0
	for i < len(tokens) {
		// Two-word phrases take precedence over single words.
		if i+1 < len(tokens) {
			if w, ok := phrases[tokens[i]+" "+tokens[i+1]]; ok {
				sum += modify(w, tokens, i)
				i += 2
				continue
			}
		}
		if w, ok := lookup(tokens[i]); ok {
			sum += modify(w, tokens, i)
		}
		i++
	}

	if sum == 0 {
		return 0, nil
	}
	compound := sum / math.Sqrt(sum*sum+normalizationAlpha)
	return clamp(compound, -1, 1), nil
}

// modify applies booster and negation context from the tokens preceding
// position i to the base valence.
func modify(valence float64, tokens []string, i int) float64 {
	for back := 1; back <= negationWindow && i-back >= 0; back++ {
		prev := tokens[i-back]
		if bump, ok := boosters[prev]; ok {
			if valence > 0 {
				valence += bump
			} else {
				valence -= bump
			}
		}
		if isNegator(prev) {
			return valence * negationFactor
		}
	}
	return valence
}

// lookup finds a token's signed valence, tolerating common inflections.
func lookup(token string) (float64, bool) {
	for _, form := range candidates(token) {
		if w, ok := positiveWords[form]; ok {
			return w, true
		}
		if w, ok := negativeWords[form]; ok {
			return -w, true
		}
	}
	return 0, false
}

// candidates returns the token plus progressively stripped inflected forms.
func candidates(token string) []string {
	forms := []string{token}
	for _, suffix := range []string{"ing", "ed", "es", "s", "d"} {
		if stripped := strings.TrimSuffix(token, suffix); stripped != token && len(stripped) >= 3 {
			forms = append(forms, stripped)
		}
	}
	return forms
}

// tokenize lowercases and splits text into word tokens, keeping
// apostrophes inside contractions.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func isNegator(token string) bool {
	if _, ok := negators[token]; ok {
		return true
	}
	return strings.HasSuffix(token, "n't")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// negators flip the valence of a following sentiment word.
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {},
	"neither": {}, "nor": {}, "cannot": {}, "without": {},
}

// boosters adjust the magnitude of the following sentiment word.
// Positive entries intensify, negative entries dampen. Magnitudes stay
// below the smallest lexicon weight so a dampener cannot flip a sign.
var boosters = map[string]float64{
	"very": 0.3, "extremely": 0.4, "hugely": 0.4, "incredibly": 0.4,
	"absolutely": 0.3, "really": 0.2, "truly": 0.2, "massively": 0.4,
	"remarkably": 0.3, "exceptionally": 0.4,
	"slightly": -0.3, "somewhat": -0.2, "barely": -0.3,
	"marginally": -0.3, "mildly": -0.2,
}

// phrases are two-word entries matched before single words (signed).
var phrases = map[string]float64{
	"record high": 2.4,
	"record low":  -2.2,
}

// Positive / negative word lexicons (lowercase base forms, weight scale
// roughly 0.5 to 3.5). Only clearly valenced words belong here; routine
// news vocabulary ("launch", "deal", "update") must stay out so that
// factual headlines score 0.
var positiveWords = map[string]float64{
	"great": 3.1, "good": 1.9, "excellent": 3.2, "amazing": 3.4,
	"wonderful": 3.2, "brilliant": 3.0, "outstanding": 3.1, "best": 3.2,
	"breakthrough": 2.2, "triumph": 2.8, "victory": 2.7, "win": 2.3,
	"winning": 2.3, "success": 2.7, "successful": 2.7, "improve": 1.7,
	"improvement": 1.7, "boost": 1.8, "gain": 1.6, "growth": 1.4,
	"rise": 1.3, "soar": 2.1, "surge": 1.9, "rally": 1.7,
	"rebound": 1.6, "recover": 1.6, "recovery": 1.6, "strong": 1.9,
	"stronger": 1.9, "optimism": 2.0, "optimistic": 2.0, "hope": 1.6,
	"hopeful": 1.8, "promising": 1.9, "innovative": 1.9, "innovation": 1.7,
	"progress": 1.6, "thrive": 2.1, "flourish": 2.0, "celebrate": 2.1,
	"award": 1.7, "praise": 2.0, "peace": 2.2, "safe": 1.5,
	"cure": 2.0, "heal": 1.8, "benefit": 1.5, "positive": 1.9,
	"upbeat": 1.8, "milestone": 1.6, "landmark": 1.5, "approve": 1.4,
	"approval": 1.5, "support": 1.1, "love": 3.0, "happy": 2.7,
	"joy": 2.8, "relief": 1.9, "revive": 1.5, "advance": 1.4,
	"upgrade": 1.6,
}

var negativeWords = map[string]float64{
	"crash": 2.9, "crisis": 2.5, "fear": 1.8, "afraid": 2.0,
	"panic": 2.6, "bad": 2.5, "worst": 3.1, "terrible": 3.0,
	"horrific": 3.3, "awful": 2.9, "disaster": 3.0, "catastrophe": 3.3,
	"tragedy": 3.0, "tragic": 2.9, "death": 2.9, "dead": 2.8,
	"die": 2.7, "kill": 2.9, "murder": 3.1, "war": 2.7,
	"attack": 2.3, "threat": 2.1, "threaten": 2.1, "violence": 2.6,
	"violent": 2.5, "collapse": 2.5, "plunge": 2.2, "slump": 2.0,
	"tumble": 1.9, "fall": 1.2, "drop": 1.1, "decline": 1.4,
	"loss": 1.7, "lose": 1.6, "fail": 2.2, "failure": 2.3,
	"weak": 1.6, "worse": 2.4, "concern": 1.3, "worry": 1.7,
	"warning": 1.5, "warn": 1.4, "risk": 1.2, "scandal": 2.4,
	"fraud": 2.8, "corrupt": 2.6, "corruption": 2.6, "scam": 2.7,
	"lawsuit": 1.6, "sue": 1.5, "ban": 1.4, "banned": 1.4,
	"layoff": 2.0, "recession": 2.4, "inflation": 1.3, "unemployment": 1.9,
	"debt": 1.4, "default": 2.0, "crime": 2.2, "hack": 1.9,
	"breach": 1.8, "outbreak": 2.1, "pandemic": 2.2, "disease": 1.9,
	"injury": 1.9, "emergency": 1.9, "pollution": 1.8, "contamination": 2.0,
	"shortage": 1.7, "struggle": 1.7, "chaos": 2.3, "anger": 2.1,
	"angry": 2.2, "riot": 2.3, "negative": 1.9, "downturn": 1.9,
	"downgrade": 1.6, "bankrupt": 2.6, "bankruptcy": 2.6, "penalty": 1.4,
	"accuse": 1.7, "arrest": 1.8, "guilty": 2.2, "toxic": 2.2,
	"explosion": 2.4, "explode": 2.3,
}
