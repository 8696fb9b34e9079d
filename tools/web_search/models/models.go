package models

// Hit is the canonical search result shape every provider adapter produces.
type Hit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	PublishTime string `json:"publish_time,omitempty"`
}
