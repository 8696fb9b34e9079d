package rerank

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/l0he1g/BaYeAgent/internal/helpers"
	"github.com/l0he1g/BaYeAgent/internal/research"
)

// selection is the structure the oracle must answer with.
type selection struct {
	Selected []struct {
		Index  int    `json:"index"`
		Score  int    `json:"score"`
		Reason string `json:"reason"`
	} `json:"selected"`
	Summary string `json:"summary"`
}

// buildPrompt renders the fixed-shape rubric prompt: every candidate with
// its domain, authority marker and publish time, plus the weighted scoring
// rubric evaluated against the freshness requirement.
func buildPrompt(candidates []Candidate, taskDescription string, topK int, freshness research.Freshness, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are ranking web search results for a research task.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", taskDescription)
	fmt.Fprintf(&b, "Freshness requirement: %s\n", freshness)
	fmt.Fprintf(&b, "Current date: %s\n\n", now.Format("2006-01-02"))

	b.WriteString("Score each candidate on these weighted criteria:\n")
	b.WriteString("1. Information value (40%): relevance to the task, presence of key facts\n")
	b.WriteString("2. Timeliness (30%): publish time against the freshness requirement, newer is better\n")
	b.WriteString("3. Content quality (20%): concrete, detailed, substantive information\n")
	b.WriteString("4. Source authority (10%): how authoritative the site is for this topic\n\n")

	b.WriteString("Candidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "[%d] %s\n", c.Index, c.Title)
		marker := ""
		if c.IsAuthoritative {
			marker = " (authoritative)"
		}
		fmt.Fprintf(&b, "    domain: %s%s\n", c.Domain, marker)
		published := c.PublishTime
		if published == "" {
			published = "unknown"
		} else if freshness.Stale(c.PublishTime, now) {
			published += " (outside freshness window)"
		}
		fmt.Fprintf(&b, "    published: %s\n", published)
		if c.Snippet != "" {
			fmt.Fprintf(&b, "    snippet: %s\n", c.Snippet)
		}
	}

	fmt.Fprintf(&b, "\nSelect exactly the %d best candidates, ordered best first.\n", topK)
	b.WriteString("Respond ONLY with valid JSON in this format:\n")
	b.WriteString(`{"selected": [{"index": 0, "score": 95, "reason": "short reason"}], "summary": "one-line summary of the selection"}`)
	b.WriteString("\nDo not include any other text.\n")

	return b.String()
}

// parseSelection extracts the selection structure from the raw oracle text,
// tolerating Markdown fences and surrounding prose.
func parseSelection(raw string) (*selection, error) {
	jsonText, err := helpers.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	var sel selection
	if err := json.Unmarshal([]byte(jsonText), &sel); err != nil {
		return nil, fmt.Errorf("decoding selection: %w", err)
	}
	if len(sel.Selected) == 0 {
		return nil, fmt.Errorf("selection contains no entries")
	}
	return &sel, nil
}
