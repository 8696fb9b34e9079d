package web_search

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
)

// ParseHits decodes a raw provider payload of either known shape into
// canonical hits: a flat list under "results", or a nested
// data.webPages.value list. Field aliases (title|name, url|link,
// content|snippet|summary, publish_time|published_date|datePublished) are
// resolved in that order. Shape detection is the only provider-specific
// branching here.
func ParseHits(raw []byte) ([]models.Hit, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding search payload: %w", err)
	}

	var list []any
	if v, ok := payload["results"].([]any); ok {
		list = v
	} else if data, ok := payload["data"].(map[string]any); ok {
		if wp, ok := data["webPages"].(map[string]any); ok {
			list, _ = wp["value"].([]any)
		}
	}
	if list == nil {
		return nil, errors.New("unrecognized search payload shape")
	}

	hits := make([]models.Hit, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		hits = append(hits, models.Hit{
			Title:       firstString(m, "title", "name"),
			URL:         firstString(m, "url", "link"),
			Snippet:     firstString(m, "content", "snippet", "summary"),
			PublishTime: firstString(m, "publish_time", "published_date", "datePublished"),
		})
	}
	return hits, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
