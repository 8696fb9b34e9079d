package research

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve"

	"github.com/l0he1g/BaYeAgent/internal/helpers"
)

// ItemHit is one keyword match over the collected items.
type ItemHit struct {
	Source      string  `json:"source"`
	Category    string  `json:"category"`
	Snippet     string  `json:"snippet"`
	PublishTime string  `json:"publish_time,omitempty"`
	Score       float64 `json:"score"`
	Rank        int     `json:"rank"`
}

// SearchCollected runs a BM25 keyword query over everything collected so
// far, letting the planner check what it already has before spending another
// round. The index is built per call from the current items; sessions hold
// at most a few dozen items, so a transient mem-only index is cheaper than
// keeping one in sync with the append-only item list.
func (s *Session) SearchCollected(q string, k int) ([]ItemHit, error) {
	if k <= 0 {
		k = 5
	}
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("building item index: %w", err)
	}
	defer index.Close()

	for i, it := range s.items {
		doc := struct {
			Content  string `json:"content"`
			Category string `json:"category"`
		}{Content: it.Content, Category: it.Category}
		if err := index.Index(strconv.Itoa(i), doc); err != nil {
			return nil, fmt.Errorf("indexing item %d: %w", i, err)
		}
	}

	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, k, 0, false)
	res, err := index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching collected items: %w", err)
	}

	out := make([]ItemHit, 0, len(res.Hits))
	for rank, hit := range res.Hits {
		idx, err := strconv.Atoi(hit.ID)
		if err != nil || idx < 0 || idx >= len(s.items) {
			continue
		}
		it := s.items[idx]
		out = append(out, ItemHit{
			Source:      it.Source,
			Category:    it.Category,
			Snippet:     helpers.Truncate(it.Content, 200),
			PublishTime: it.PublishTime,
			Score:       hit.Score,
			Rank:        rank + 1,
		})
	}
	return out, nil
}
