// Package sentiment implements a small lexical polarity scorer for news
// headlines and summaries. Scores live in [-1, 1]; they are the mean polarity
// of the sentiment-bearing words found in the text.
package sentiment

import "strings"

// Per-item labels split at zero; batch aggregation uses the wider ±0.2 band,
// so a single mildly positive item does not flip a batch to Positive.
const aggregateThreshold = 0.2

// lexicon maps lowercase sentiment-bearing words to their polarity.
var lexicon = map[string]float64{
	// positive
	"gain": 0.5, "gains": 0.5, "rally": 0.7, "rallies": 0.7, "surge": 0.8,
	"surges": 0.8, "soar": 0.9, "soars": 0.9, "bullish": 0.8, "boom": 0.7,
	"rise": 0.4, "rises": 0.4, "rising": 0.4, "up": 0.2, "upside": 0.4,
	"record": 0.4, "high": 0.3, "highs": 0.3, "strong": 0.5, "strength": 0.5,
	"growth": 0.5, "grow": 0.4, "grows": 0.4, "profit": 0.6, "profits": 0.6,
	"win": 0.6, "wins": 0.6, "success": 0.7, "successful": 0.7, "positive": 0.6,
	"optimism": 0.6, "optimistic": 0.6, "adoption": 0.4, "approve": 0.5,
	"approves": 0.5, "approval": 0.5, "breakthrough": 0.8, "recover": 0.4,
	"recovers": 0.4, "recovery": 0.4, "rebound": 0.5, "rebounds": 0.5,
	"upgrade": 0.5, "upgrades": 0.5, "outperform": 0.6, "momentum": 0.3,
	"best": 0.7, "good": 0.5, "great": 0.8, "opportunity": 0.4, "support": 0.2,

	// negative
	"loss": -0.6, "losses": -0.6, "crash": -0.9, "crashes": -0.9, "plunge": -0.8,
	"plunges": -0.8, "plummet": -0.9, "plummets": -0.9, "bearish": -0.8,
	"fall": -0.4, "falls": -0.4, "falling": -0.4, "down": -0.2, "downside": -0.4,
	"drop": -0.4, "drops": -0.4, "decline": -0.4, "declines": -0.4,
	"weak": -0.5, "weakness": -0.5, "fear": -0.6, "fears": -0.6, "panic": -0.8,
	"selloff": -0.7, "dump": -0.6, "dumps": -0.6, "negative": -0.6,
	"fraud": -0.9, "scam": -0.9, "hack": -0.8, "hacked": -0.8, "exploit": -0.7,
	"ban": -0.6, "bans": -0.6, "banned": -0.6, "crackdown": -0.6,
	"lawsuit": -0.5, "sue": -0.5, "sues": -0.5, "fine": -0.4, "fines": -0.4,
	"risk": -0.3, "risks": -0.3, "risky": -0.4, "warning": -0.5, "warns": -0.5,
	"concern": -0.4, "concerns": -0.4, "uncertain": -0.4, "uncertainty": -0.4,
	"bankruptcy": -0.9, "bankrupt": -0.9, "collapse": -0.9, "collapses": -0.9,
	"worst": -0.8, "bad": -0.5, "trouble": -0.5, "crisis": -0.7, "low": -0.3,
	"lows": -0.3, "downgrade": -0.5, "downgrades": -0.5, "liquidation": -0.6,
	"liquidations": -0.6, "volatile": -0.3, "volatility": -0.3,
}

// Score computes the polarity of text as the mean polarity of its
// sentiment-bearing words, clamped to [-1, 1]. Text with no such words
// scores 0.
func Score(text string) float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	var sum float64
	var matched int
	for _, w := range words {
		if polarity, ok := lexicon[w]; ok {
			sum += polarity
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	score := sum / float64(matched)
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// Label buckets a single item's score at zero.
func Label(score float64) string {
	switch {
	case score > 0:
		return "Positive"
	case score < 0:
		return "Negative"
	default:
		return "Neutral"
	}
}

// AggregateLabel buckets the mean of a batch of scores at ±0.2. An empty
// batch is Neutral.
func AggregateLabel(scores []float64) string {
	if len(scores) == 0 {
		return "Neutral"
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	switch {
	case mean > aggregateThreshold:
		return "Positive"
	case mean < -aggregateThreshold:
		return "Negative"
	default:
		return "Neutral"
	}
}
