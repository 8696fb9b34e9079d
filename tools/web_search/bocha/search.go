package bocha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
)

const apiURL = "https://api.bochaai.com/v1/web-search"

// Search is the Bocha adapter. Bocha nests hits under data.webPages.value
// and uses Bing-style field names (name, summary, datePublished).
type Search struct {
	ApiKey string
	Client *http.Client
}

func (s Search) Discover(ctx context.Context, q string, k int, freshness research.Freshness, topic string) ([]models.Hit, error) {
	// https://open.bochaai.com/ web-search docs
	if k > 50 {
		k = 50 // provider maximum
	}
	payload := map[string]any{
		"query":   q,
		"count":   k,
		"summary": true,
	}
	if freshness != research.FreshnessNoLimit && freshness != "" {
		payload["freshness"] = string(freshness)
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.ApiKey)
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
		return nil, fmt.Errorf("bocha returned status %d", resp.StatusCode)
	}

	var raw struct {
		Data struct {
			WebPages struct {
				Value []struct {
					Name          string `json:"name"`
					URL           string `json:"url"`
					Snippet       string `json:"snippet"`
					Summary       string `json:"summary"`
					DatePublished string `json:"datePublished"`
				} `json:"value"`
			} `json:"webPages"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var out []models.Hit
	for i, r := range raw.Data.WebPages.Value {
		if i >= k {
			break
		}
		snippet := r.Summary
		if snippet == "" {
			snippet = r.Snippet
		}
		out = append(out, models.Hit{Title: r.Name, URL: r.URL, Snippet: snippet, PublishTime: shortDate(r.DatePublished)})
	}
	return out, nil
}

// shortDate trims RFC3339-style timestamps down to YYYY-MM-DD.
func shortDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
