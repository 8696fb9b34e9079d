package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
)

const apiURL = "https://api.tavily.com/search"

// Search is the Tavily adapter. Tavily answers with a flat list under a
// top-level "results" key.
type Search struct {
	ApiKey string
	Client *http.Client
}

func (s Search) Discover(ctx context.Context, q string, k int, freshness research.Freshness, topic string) ([]models.Hit, error) {
	// https://docs.tavily.com/ web search endpoint
	payload := map[string]any{
		"api_key":     s.ApiKey,
		"query":       q,
		"max_results": k,
	}
	if topic != "" {
		payload["topic"] = topic
	}
	if window, ok := freshness.Window(); ok {
		payload["days"] = int(window.Hours() / 24)
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			Title         string `json:"title"`
			URL           string `json:"url"`
			Content       string `json:"content"`
			PublishedDate string `json:"published_date"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var out []models.Hit
	for i, r := range raw.Results {
		if i >= k {
			break
		}
		out = append(out, models.Hit{Title: r.Title, URL: r.URL, Snippet: r.Content, PublishTime: r.PublishedDate})
	}
	return out, nil
}
