package rerank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
)

type stubOracle struct {
	reply string
	err   error
	calls int
	seen  string
}

func (o *stubOracle) Score(_ context.Context, prompt string) (string, error) {
	o.calls++
	o.seen = prompt
	return o.reply, o.err
}

func makeHits(n int) []models.Hit {
	hits := make([]models.Hit, 0, n)
	for i := 0; i < n; i++ {
		hits = append(hits, models.Hit{
			Title:       fmt.Sprintf("result %d", i),
			URL:         fmt.Sprintf("https://site%d.example/page", i),
			Snippet:     fmt.Sprintf("snippet %d", i),
			PublishTime: "2026-08-20",
		})
	}
	return hits
}

func TestRerankPassthroughWithinTopK(t *testing.T) {
	oracle := &stubOracle{}
	r := New(oracle, nil)

	out := r.Rerank(context.Background(), makeHits(3), "task", Options{TopK: 10})
	if out.Path != PathPassthrough {
		t.Fatalf("expected passthrough, got %s", out.Path)
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle must not be called below the top-K threshold")
	}
	if out.TotalFound != 3 || out.TotalReturned != 3 {
		t.Fatalf("counts wrong: %+v", out)
	}
	if out.Summary == "" {
		t.Fatalf("summary must never be empty")
	}
	for i, c := range out.Results {
		if c.Index != i {
			t.Fatalf("passthrough must keep input order")
		}
	}
}

func TestRerankOraclePath(t *testing.T) {
	oracle := &stubOracle{reply: "```json\n" +
		`{"selected": [{"index": 4, "score": 95, "reason": "best"}, {"index": 1, "score": 80, "reason": "good"}], "summary": "two strong hits"}` +
		"\n```"}
	r := New(oracle, nil)

	out := r.Rerank(context.Background(), makeHits(5), "task", Options{TopK: 2})
	if out.Path != PathOracle {
		t.Fatalf("expected oracle path, got %s", out.Path)
	}
	if out.TotalFound != 5 || out.TotalReturned != 2 {
		t.Fatalf("counts wrong: %+v", out)
	}
	if out.Results[0].Index != 4 || out.Results[1].Index != 1 {
		t.Fatalf("oracle order must become the final rank: %+v", out.Results)
	}
	if out.Results[0].LLMScore != 95 || out.Results[0].LLMReason != "best" {
		t.Fatalf("oracle scores must be attached: %+v", out.Results[0])
	}
	if out.Summary != "two strong hits" {
		t.Fatalf("oracle summary must pass through, got %q", out.Summary)
	}
}

func TestRerankOracleCallFailureTruncates(t *testing.T) {
	oracle := &stubOracle{err: errors.New("rate limited")}
	r := New(oracle, nil)

	out := r.Rerank(context.Background(), makeHits(6), "task", Options{TopK: 3})
	if out.Path != PathTruncate {
		t.Fatalf("call failure must truncate, got %s", out.Path)
	}
	if out.TotalReturned != 3 {
		t.Fatalf("expected 3 results, got %d", out.TotalReturned)
	}
	for i, c := range out.Results {
		if c.Index != i {
			t.Fatalf("truncate must keep input order")
		}
	}
	if !strings.Contains(out.Summary, "rate limited") {
		t.Fatalf("summary should explain the degradation: %q", out.Summary)
	}
}

func TestRerankUnparsableResponseSortsByAuthority(t *testing.T) {
	oracle := &stubOracle{reply: "I cannot rank these results, sorry."}
	r := New(oracle, nil)

	hits := []models.Hit{
		{Title: "blog", URL: "https://random-blog.example/a"},
		{Title: "gov", URL: "https://stats.gov.cn/b"},
		{Title: "reuters", URL: "https://www.reuters.com/c"},
		{Title: "blog2", URL: "https://another.example/d"},
	}
	out := r.Rerank(context.Background(), hits, "task", Options{TopK: 2, Topic: "news"})
	if out.Path != PathAuthority {
		t.Fatalf("unparsable response must fall to authority sort, got %s", out.Path)
	}
	if out.TotalReturned != 2 {
		t.Fatalf("expected 2 results, got %d", out.TotalReturned)
	}
	// reuters.com is in the news category (1.0), .gov scores 0.9
	if out.Results[0].Domain != "reuters.com" || out.Results[1].Domain != "stats.gov.cn" {
		t.Fatalf("authority order wrong: %+v", out.Results)
	}
}

func TestRerankEmptySelectionSortsByAuthority(t *testing.T) {
	oracle := &stubOracle{reply: `{"selected": [], "summary": "nothing"}`}
	r := New(oracle, nil)
	out := r.Rerank(context.Background(), makeHits(4), "task", Options{TopK: 2})
	if out.Path != PathAuthority {
		t.Fatalf("empty selection counts as unparsable, got %s", out.Path)
	}
}

func TestRerankInvalidIndicesTruncate(t *testing.T) {
	cases := []string{
		`{"selected": [{"index": 99, "score": 90, "reason": "x"}], "summary": "s"}`,
		`{"selected": [{"index": 1, "score": 90, "reason": "x"}, {"index": 1, "score": 80, "reason": "y"}], "summary": "s"}`,
		`{"selected": [{"index": -1, "score": 90, "reason": "x"}], "summary": "s"}`,
	}
	for _, reply := range cases {
		r := New(&stubOracle{reply: reply}, nil)
		out := r.Rerank(context.Background(), makeHits(5), "task", Options{TopK: 2})
		if out.Path != PathTruncate {
			t.Fatalf("invalid selection %q must truncate, got %s", reply, out.Path)
		}
		if out.Results[0].Index != 0 || out.Results[1].Index != 1 {
			t.Fatalf("truncate must keep input order")
		}
	}
}

func TestRerankLargeRecallSelectsExactlyTopK(t *testing.T) {
	var picks []string
	for i, idx := range []int{59, 0, 17, 42, 3, 28, 55, 9, 31, 46} {
		picks = append(picks, fmt.Sprintf(`{"index": %d, "score": %d, "reason": "r"}`, idx, 99-i))
	}
	oracle := &stubOracle{reply: `{"selected": [` + strings.Join(picks, ",") + `], "summary": "broad recall narrowed"}`}
	r := New(oracle, nil)

	out := r.Rerank(context.Background(), makeHits(60), "task", Options{TopK: 10})
	if out.Path != PathOracle {
		t.Fatalf("expected oracle path, got %s", out.Path)
	}
	if out.TotalFound != 60 || out.TotalReturned != 10 {
		t.Fatalf("counts wrong: %+v", out)
	}
	seen := map[int]bool{}
	for _, c := range out.Results {
		if c.LLMScore == 0 {
			t.Fatalf("every selected candidate must carry the oracle score: %+v", c)
		}
		if seen[c.Index] {
			t.Fatalf("duplicate index %d in results", c.Index)
		}
		seen[c.Index] = true
	}
	if out.Results[0].Index != 59 {
		t.Fatalf("oracle order must be preserved, got %+v", out.Results[0])
	}
}

func TestRerankFewerSelectionsThanTopKAccepted(t *testing.T) {
	oracle := &stubOracle{reply: `{"selected": [{"index": 2, "score": 70, "reason": "only one worth keeping"}], "summary": "thin"}`}
	r := New(oracle, nil)
	out := r.Rerank(context.Background(), makeHits(5), "task", Options{TopK: 3})
	if out.Path != PathOracle || out.TotalReturned != 1 {
		t.Fatalf("a short but valid selection must be accepted: %+v", out)
	}
}

func TestRerankPromptMentionsStaleResults(t *testing.T) {
	oracle := &stubOracle{err: errors.New("skip")}
	r := New(oracle, nil)
	hits := makeHits(11)
	hits[0].PublishTime = "2020-01-01"
	r.Rerank(context.Background(), hits, "task", Options{TopK: 10, Freshness: research.FreshnessOneMonth})
	if !strings.Contains(oracle.seen, "outside freshness window") {
		t.Fatalf("prompt must annotate stale publish times")
	}
	if !strings.Contains(oracle.seen, "Information value (40%)") {
		t.Fatalf("prompt must carry the weighted rubric")
	}
}

func TestNormalizeTruncatesAndClassifies(t *testing.T) {
	hits := []models.Hit{{
		Title:   strings.Repeat("t", 300),
		URL:     "https://www.nature.com/articles/x",
		Snippet: strings.Repeat("s", 600),
	}}
	cands := Normalize(hits, "academic")
	c := cands[0]
	if len([]rune(c.Title)) != 200 {
		t.Fatalf("title must be bounded to 200 runes, got %d", len([]rune(c.Title)))
	}
	if len([]rune(c.Snippet)) != 500 {
		t.Fatalf("snippet must be bounded to 500 runes, got %d", len([]rune(c.Snippet)))
	}
	if c.Domain != "nature.com" {
		t.Fatalf("domain extraction wrong: %q", c.Domain)
	}
	if !c.IsAuthoritative || c.AuthorityScore != 1.0 {
		t.Fatalf("nature.com is authoritative for academic: %+v", c)
	}
}

func TestClassifyAuthority(t *testing.T) {
	cases := []struct {
		domain string
		topic  string
		auth   bool
		score  float64
	}{
		{"bloomberg.com", "finance", true, 1.0},
		{"bloomberg.com", "tech", true, 0.8},
		{"sub.reuters.com", "news", true, 1.0},
		{"stats.gov.cn", "finance", true, 0.9},
		{"mit.edu", "", true, 0.9},
		{"myblog.example", "news", false, 0.5},
		{"", "news", false, 0.5},
		{"notreuters.com", "news", false, 0.5},
	}
	for _, tc := range cases {
		auth, score := classifyAuthority(tc.domain, tc.topic)
		if auth != tc.auth || score != tc.score {
			t.Fatalf("classifyAuthority(%q, %q) = %v, %v; want %v, %v",
				tc.domain, tc.topic, auth, score, tc.auth, tc.score)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	if d := ExtractDomain("https://www.Example.COM/path?q=1"); d != "example.com" {
		t.Fatalf("got %q", d)
	}
	if d := ExtractDomain("not a url"); d != "" {
		t.Fatalf("expected empty domain, got %q", d)
	}
}
