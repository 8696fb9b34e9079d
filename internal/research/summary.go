package research

import "github.com/l0he1g/BaYeAgent/internal/helpers"

const previewChars = 100

// ItemPreview is a truncated view of one collected item.
type ItemPreview struct {
	ContentPreview string `json:"content_preview"`
	Source         string `json:"source"`
	PublishTime    string `json:"publish_time,omitempty"`
}

// CategoryGroup holds the previews of one category, in insertion order.
type CategoryGroup struct {
	Category string        `json:"category"`
	Items    []ItemPreview `json:"items"`
}

// Summary is the read-only projection of everything collected so far,
// grouped by category in order of first appearance.
type Summary struct {
	TotalItems    int             `json:"total_items"`
	UniqueSources int             `json:"unique_sources"`
	Categories    []string        `json:"categories"`
	ByCategory    []CategoryGroup `json:"by_category"`
}

// Summarize produces the collection summary. Pure projection, side-effect
// free, safe to call at any point in the session.
func (s *Session) Summarize() Summary {
	order := []string{}
	groups := map[string]*CategoryGroup{}
	for _, it := range s.items {
		g, ok := groups[it.Category]
		if !ok {
			g = &CategoryGroup{Category: it.Category}
			groups[it.Category] = g
			order = append(order, it.Category)
		}
		g.Items = append(g.Items, ItemPreview{
			ContentPreview: helpers.Truncate(it.Content, previewChars),
			Source:         it.Source,
			PublishTime:    it.PublishTime,
		})
	}

	byCategory := make([]CategoryGroup, 0, len(order))
	for _, cat := range order {
		byCategory = append(byCategory, *groups[cat])
	}
	return Summary{
		TotalItems:    len(s.items),
		UniqueSources: len(s.UniqueSources()),
		Categories:    order,
		ByCategory:    byCategory,
	}
}
