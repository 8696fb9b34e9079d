// Package researcher chains the boundary pieces of one search round:
// cache lookup, provider call, oracle rerank, page collection, and the
// round record in the session.
package researcher

import (
	"context"
	"fmt"
	"log"

	"github.com/l0he1g/BaYeAgent/internal/rerank"
	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/internal/searchcache"
	"github.com/l0he1g/BaYeAgent/internal/telemetry"
	"github.com/l0he1g/BaYeAgent/tools/web_fetch"
	"github.com/l0he1g/BaYeAgent/tools/web_search"
	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
)

// SearchResult is the outcome of one search-then-rerank call.
type SearchResult struct {
	Results       []rerank.Candidate `json:"results"`
	TotalFound    int                `json:"total_found"`
	TotalReturned int                `json:"total_returned"`
	RerankSummary string             `json:"rerank_summary"`
	Path          rerank.Path        `json:"rerank_path"`
}

// Researcher owns the external boundaries of the loop. Cache, reader and
// metrics are optional; a nil cache always misses, a nil reader collects
// from snippets only.
type Researcher struct {
	Searcher web_search.WebSearcher
	Reader   web_fetch.WebReader
	Reranker *rerank.Reranker
	Cache    *searchcache.Cache
	Metrics  *telemetry.Metrics
	Logger   *log.Logger
}

// RoundOptions configures one search round.
type RoundOptions struct {
	MaxResults int
	TopK       int
	Topic      string
	Freshness  research.Freshness
	Category   string // category label for collected items
}

// SearchWithRerank widens recall through the provider, then narrows to the
// best topK via the reranker. Provider errors propagate uncaught; rerank
// degradations do not (the outcome is tagged instead).
func (r *Researcher) SearchWithRerank(ctx context.Context, query, taskDescription string, opts RoundOptions) (SearchResult, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}
	if opts.TopK <= 0 {
		opts.TopK = rerank.DefaultTopK
	}

	hits, cached := r.cachedHits(ctx, query, opts.Freshness)
	if !cached {
		var err error
		hits, err = r.Searcher.Discover(ctx, query, opts.MaxResults, opts.Freshness, opts.Topic)
		if err != nil {
			return SearchResult{}, fmt.Errorf("search %q: %w", query, err)
		}
		r.countSearch(query)
		if r.Cache != nil {
			r.Cache.Put(ctx, query, opts.Freshness, hits)
		}
	}

	outcome := r.Reranker.Rerank(ctx, hits, taskDescription, rerank.Options{
		TopK:      opts.TopK,
		Topic:     opts.Topic,
		Freshness: opts.Freshness,
	})
	if r.Metrics != nil {
		r.Metrics.RerankOutcomes.WithLabelValues(string(outcome.Path)).Inc()
	}

	return SearchResult{
		Results:       outcome.Results,
		TotalFound:    outcome.TotalFound,
		TotalReturned: outcome.TotalReturned,
		RerankSummary: outcome.Summary,
		Path:          outcome.Path,
	}, nil
}

// Collect reads each result's page and stores it in the session. Extraction
// failures fall back to the snippet and publish time already known from the
// search hit; they are counted, never propagated. Returns the number of
// items added.
func (r *Researcher) Collect(ctx context.Context, sess *research.Session, res SearchResult, category string) int {
	if category == "" {
		category = "general"
	}
	added := 0
	for _, c := range res.Results {
		content := c.Snippet
		publishTime := c.PublishTime
		if r.Reader != nil {
			page, err := r.Reader.Read(ctx, c.URL)
			if err == nil {
				content = page.Content
				if page.PublishTime != "" {
					publishTime = page.PublishTime
				}
			} else {
				r.logf("read %s failed, keeping snippet: %v", c.URL, err)
				if r.Metrics != nil {
					r.Metrics.FetchFailures.Inc()
				}
			}
		}
		relevance := 1.0
		if c.LLMScore > 0 {
			relevance = float64(c.LLMScore) / 100
		}
		sess.AddItem(content, c.URL, publishTime, relevance, category)
		added++
	}
	return added
}

// RunRound performs a full round: search, rerank, collect, and the round
// record with the rerank summary in the notes.
func (r *Researcher) RunRound(ctx context.Context, sess *research.Session, query, taskDescription string, opts RoundOptions) (SearchResult, error) {
	res, err := r.SearchWithRerank(ctx, query, taskDescription, opts)
	if err != nil {
		return SearchResult{}, err
	}
	collected := r.Collect(ctx, sess, res, opts.Category)
	sess.RecordRound(query, string(opts.Freshness), res.TotalFound, collected, res.RerankSummary)
	return res, nil
}

func (r *Researcher) cachedHits(ctx context.Context, query string, freshness research.Freshness) ([]models.Hit, bool) {
	if r.Cache == nil {
		return nil, false
	}
	hits, ok := r.Cache.Get(ctx, query, freshness)
	if ok && r.Metrics != nil {
		r.Metrics.CacheHits.Inc()
	}
	return hits, ok
}

func (r *Researcher) countSearch(query string) {
	if r.Metrics == nil {
		return
	}
	provider := string(web_search.TavilyProvider)
	if web_search.IsChineseQuery(query) {
		provider = string(web_search.BochaProvider)
	}
	r.Metrics.Searches.WithLabelValues(provider).Inc()
}

func (r *Researcher) logf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}
