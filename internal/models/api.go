package models

// SearchRequest is the POST /search body. TopK and Threshold are pointers so
// the handler can tell "field absent" (apply default) apart from an explicit
// zero, which must fail validation.
type SearchRequest struct {
	UserID    string   `json:"user_id"`
	Text      string   `json:"text"`
	TopK      *int     `json:"top_k"`
	Threshold *float64 `json:"threshold"`
}

type SearchResponse struct {
	Results       []Article `json:"results"`
	InferenceTime float64   `json:"inference_time"`
}

// HighlightedArticle is the trimmed article shape returned on the no-match
// fallback path.
type HighlightedArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"`
}

type NoMatchResponse struct {
	Message         string               `json:"message"`
	HighlightedNews []HighlightedArticle `json:"highlighted_news"`
}

type HealthResponse struct {
	Status string  `json:"status"`
	Random float64 `json:"random"`
}
