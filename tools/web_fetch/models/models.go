package models

// Page is the structured content extracted from one webpage.
type Page struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	PublishTime string `json:"publish_time,omitempty"` // YYYY-MM-DD when known
	Content     string `json:"content"`
	RawContent  string `json:"raw_content,omitempty"`
}
