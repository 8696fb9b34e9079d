// Package rerank curates raw search hits into a vetted top-K set. An
// injected scoring oracle picks the best candidates; when its response is
// malformed or the call fails, a deterministic two-level fallback ladder
// still yields a bounded, labeled result. Rerank never returns an error for
// oracle trouble.
package rerank

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/l0he1g/BaYeAgent/internal/helpers"
	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
)

const (
	DefaultTopK = 10
	maxTitleLen = 200
	maxSnippet  = 500
)

// Candidate is a normalized, authority-classified search hit. LLMScore and
// LLMReason are set only on the oracle path.
type Candidate struct {
	Index           int     `json:"index"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Snippet         string  `json:"snippet"`
	PublishTime     string  `json:"publish_time,omitempty"`
	Domain          string  `json:"domain"`
	IsAuthoritative bool    `json:"is_authoritative"`
	AuthorityScore  float64 `json:"authority_score"`
	LLMScore        int     `json:"llm_score,omitempty"`
	LLMReason       string  `json:"llm_reason,omitempty"`
}

// Path tags which rung of the ladder produced an outcome.
type Path string

const (
	PathPassthrough Path = "passthrough"    // candidate count within top-K, nothing pruned
	PathOracle      Path = "oracle"         // oracle selection accepted
	PathAuthority   Path = "authority_sort" // oracle response unparsable, sorted by authority
	PathTruncate    Path = "truncate"       // oracle call failed, first K in input order
)

// Outcome is the tagged rerank result. Results holds at most TopK entries
// and Summary is always non-empty.
type Outcome struct {
	Results       []Candidate `json:"results"`
	TotalFound    int         `json:"total_found"`
	TotalReturned int         `json:"total_returned"`
	Summary       string      `json:"rerank_summary"`
	Path          Path        `json:"rerank_path"`
}

// Oracle scores a rubric prompt and returns the raw model text. The response
// may arrive wrapped in Markdown fences; parsing and recovery are the
// reranker's job, not the oracle's.
type Oracle interface {
	Score(ctx context.Context, prompt string) (string, error)
}

// Options tune one Rerank call.
type Options struct {
	TopK      int
	Topic     string // authority category hint: finance, news, tech, academic
	Freshness research.Freshness
}

// Reranker normalizes raw hits and drives the scoring oracle.
type Reranker struct {
	oracle Oracle
	logger *log.Logger
	now    func() time.Time
}

func New(oracle Oracle, logger *log.Logger) *Reranker {
	if logger == nil {
		logger = log.New(log.Writer(), "[RERANK] ", log.LstdFlags)
	}
	return &Reranker{oracle: oracle, logger: logger, now: time.Now}
}

// Normalize converts provider hits into indexed, truncated, authority-scored
// candidates. Titles are bounded to 200 runes and snippets to 500 to keep
// the downstream prompt size in check.
func Normalize(hits []models.Hit, topic string) []Candidate {
	out := make([]Candidate, 0, len(hits))
	for i, h := range hits {
		domain := ExtractDomain(h.URL)
		auth, score := classifyAuthority(domain, topic)
		out = append(out, Candidate{
			Index:           i,
			Title:           helpers.TruncateRaw(h.Title, maxTitleLen),
			URL:             h.URL,
			Snippet:         helpers.TruncateRaw(h.Snippet, maxSnippet),
			PublishTime:     h.PublishTime,
			Domain:          domain,
			IsAuthoritative: auth,
			AuthorityScore:  score,
		})
	}
	return out
}

// Rerank selects and orders the top candidates for the task. Exactly one
// ladder path executes: oracle success, authority-sorted degradation on a
// parse failure, or input-order truncation on any other oracle failure.
// With no more candidates than topK the call is a pure pass-through.
func (r *Reranker) Rerank(ctx context.Context, hits []models.Hit, taskDescription string, opts Options) Outcome {
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	candidates := Normalize(hits, opts.Topic)

	if len(candidates) <= topK {
		return Outcome{
			Results:       candidates,
			TotalFound:    len(candidates),
			TotalReturned: len(candidates),
			Summary:       fmt.Sprintf("%d results within the top-%d limit; no filtering applied", len(candidates), topK),
			Path:          PathPassthrough,
		}
	}

	prompt := buildPrompt(candidates, taskDescription, topK, opts.Freshness, r.now())

	raw, err := r.oracle.Score(ctx, prompt)
	if err != nil {
		r.logger.Printf("oracle call failed, truncating to input order: %v", err)
		return r.truncate(candidates, topK, fmt.Sprintf("rerank oracle unavailable (%v); returning first %d results in original order", err, topK))
	}

	selection, err := parseSelection(raw)
	if err != nil {
		r.logger.Printf("oracle response unparsable, falling back to authority sort: %v", err)
		return r.authoritySort(candidates, topK)
	}

	picked, err := applySelection(candidates, selection, topK)
	if err != nil {
		r.logger.Printf("oracle selection invalid, truncating to input order: %v", err)
		return r.truncate(candidates, topK, fmt.Sprintf("rerank selection invalid (%v); returning first %d results in original order", err, topK))
	}

	summary := selection.Summary
	if summary == "" {
		summary = fmt.Sprintf("oracle selected %d of %d results", len(picked), len(candidates))
	}
	return Outcome{
		Results:       picked,
		TotalFound:    len(candidates),
		TotalReturned: len(picked),
		Summary:       summary,
		Path:          PathOracle,
	}
}

func (r *Reranker) authoritySort(candidates []Candidate, topK int) Outcome {
	sorted := append([]Candidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AuthorityScore > sorted[j].AuthorityScore
	})
	if len(sorted) > topK {
		sorted = sorted[:topK]
	}
	return Outcome{
		Results:       sorted,
		TotalFound:    len(candidates),
		TotalReturned: len(sorted),
		Summary:       fmt.Sprintf("rerank response unparsable; returning top %d results by source authority", len(sorted)),
		Path:          PathAuthority,
	}
}

func (r *Reranker) truncate(candidates []Candidate, topK int, summary string) Outcome {
	kept := candidates
	if len(kept) > topK {
		kept = kept[:topK]
	}
	return Outcome{
		Results:       append([]Candidate(nil), kept...),
		TotalFound:    len(candidates),
		TotalReturned: len(kept),
		Summary:       summary,
		Path:          PathTruncate,
	}
}

// applySelection maps oracle picks back onto the normalized candidates,
// preserving the oracle's order as the final rank. Out-of-range or duplicate
// indices invalidate the whole selection.
func applySelection(candidates []Candidate, sel *selection, topK int) ([]Candidate, error) {
	if len(sel.Selected) > topK {
		sel.Selected = sel.Selected[:topK]
	}
	seen := make(map[int]struct{}, len(sel.Selected))
	out := make([]Candidate, 0, len(sel.Selected))
	for _, pick := range sel.Selected {
		if pick.Index < 0 || pick.Index >= len(candidates) {
			return nil, fmt.Errorf("index %d out of range", pick.Index)
		}
		if _, dup := seen[pick.Index]; dup {
			return nil, fmt.Errorf("index %d selected twice", pick.Index)
		}
		seen[pick.Index] = struct{}{}
		c := candidates[pick.Index]
		c.LLMScore = pick.Score
		c.LLMReason = pick.Reason
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty selection")
	}
	return out, nil
}
