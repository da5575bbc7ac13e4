// Package dto defines data transfer objects for the news HTTP API.
package dto

// ErrorResponse is the error body returned by the news endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewsItemResponse is one scored article in a news response.
type NewsItemResponse struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	PublishedAt string  `json:"timestamp"`
	Sentiment   float64 `json:"sentiment"`
	Label       string  `json:"sentiment_label"`
}

// NewsResponse carries a scored batch plus its aggregate label.
type NewsResponse struct {
	Symbol           string             `json:"symbol"`
	OverallSentiment string             `json:"overall_sentiment"`
	Count            int                `json:"count"`
	Items            []NewsItemResponse `json:"news_items"`
}
