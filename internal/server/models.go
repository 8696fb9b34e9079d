package server

import "encoding/json"

// HTTPError is the unified error body.
type HTTPError struct {
	Error string `json:"error"`
}

type InitSessionRequest struct {
	MaxRounds int `json:"max_rounds"`
}

type TaskRequest struct {
	Description       string   `json:"description"`
	RequiredInfoTypes []string `json:"required_info_types"`
	MinSources        int      `json:"min_sources"`
	TimeSensitivity   string   `json:"time_sensitivity"`
}

type RecordRoundRequest struct {
	Query            string `json:"query"`
	Freshness        string `json:"freshness"`
	ResultsFound     int    `json:"results_found"`
	ResultsCollected int    `json:"results_collected"`
	Notes            string `json:"notes"`
}

type AddItemRequest struct {
	Content        string  `json:"content"`
	Source         string  `json:"source"`
	PublishTime    string  `json:"publish_time"`
	RelevanceScore float64 `json:"relevance_score"`
	Category       string  `json:"category"`
}

type ReflectRequest struct {
	CoveredAspects []string `json:"covered_aspects"`
	MissingAspects []string `json:"missing_aspects"`
}

type ContinueRequest struct {
	TaskComplete  bool     `json:"task_complete"`
	ReasonsToStop []string `json:"reasons_to_stop"`
}

// RerankRequest carries raw provider output untouched; the handler
// normalizes either supported response shape.
type RerankRequest struct {
	Task      string          `json:"task"`
	Results   json.RawMessage `json:"results"`
	TopK      int             `json:"top_k"`
	Topic     string          `json:"topic"`
	Freshness string          `json:"freshness"`
}

type SearchRequest struct {
	Query      string `json:"query"`
	Task       string `json:"task"`
	MaxResults int    `json:"max_results"`
	TopK       int    `json:"top_k"`
	Topic      string `json:"topic"`
	Freshness  string `json:"freshness"`
	Category   string `json:"category"`
	Collect    bool   `json:"collect"`
}
