package dto

// NewsResponse is the shape of a NEWS_SENTIMENT response.
type NewsResponse struct {
	Feed         []NewsArticle `json:"feed"`
	Note         string        `json:"Note"`
	Information  string        `json:"Information"`
	ErrorMessage string        `json:"Error Message"`
}

// NewsArticle is one article of the news feed. TimePublished uses the API's
// compact layout, e.g. "20240301T154500".
type NewsArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	TimePublished string `json:"time_published"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
}
