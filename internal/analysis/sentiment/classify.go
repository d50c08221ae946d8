package sentiment

// Label is the categorical sentiment of a compound score.
type Label string

// Sentiment labels as they appear in API responses.
const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// Classification thresholds. Both boundaries are inclusive of the
// non-Neutral side: a score of exactly 0.05 is Positive and exactly
// -0.05 is Negative.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Classify maps a compound score to its label. Pure and total.
func Classify(score float64) Label {
	switch {
	case score >= PositiveThreshold:
		return Positive
	case score <= NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// String returns the label text.
func (l Label) String() string {
	return string(l)
}
