// Package entity defines the domain models for the news feature.
package entity

import "time"

// Sentiment labels for a scored news item or an aggregated batch.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Article is one news article as returned by the news API, before sentiment
// scoring.
type Article struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"time_published"`
}

// NewsItem is a scored article: sentiment is the lexical polarity of the
// title and summary in [-1, 1], and the label buckets it at zero.
type NewsItem struct {
	Title       string    `json:"title" bson:"title"`
	Summary     string    `json:"summary" bson:"summary"`
	URL         string    `json:"url" bson:"url"`
	Source      string    `json:"source" bson:"source"`
	PublishedAt time.Time `json:"timestamp" bson:"timestamp"`
	Sentiment   float64   `json:"sentiment" bson:"sentiment"`
	Label       string    `json:"sentiment_label" bson:"sentiment_label"`
}

// NewsBatch is a persisted, timestamped capture of scored news for one
// symbol. Same append-only, latest-wins discipline as market snapshots.
type NewsBatch struct {
	Symbol     string     `json:"symbol" bson:"symbol"`
	Items      []NewsItem `json:"news_items" bson:"news_items"`
	CapturedAt time.Time  `json:"timestamp" bson:"timestamp"`
}
