package web_search

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/tools/web_search/bocha"
	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
	"github.com/l0he1g/BaYeAgent/tools/web_search/tavily"
)

// WebSearcher is the provider-neutral search interface.
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int, freshness research.Freshness, topic string) ([]models.Hit, error)
}

type Provider string

const (
	TavilyProvider Provider = "tavily"
	BochaProvider  Provider = "bocha"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

func NewWebSearcher(provider Provider, apiKey string) (WebSearcher, error) {
	switch provider {
	case TavilyProvider:
		return tavily.Search{ApiKey: apiKey}, nil
	case BochaProvider:
		return bocha.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// Router picks a provider per query: Chinese-dominant queries go to Bocha,
// everything else to Tavily. Either side may be nil, in which case the other
// handles all queries.
type Router struct {
	Tavily WebSearcher
	Bocha  WebSearcher
}

func (r Router) Discover(ctx context.Context, q string, k int, freshness research.Freshness, topic string) ([]models.Hit, error) {
	s := r.pick(q)
	if s == nil {
		return nil, errors.New("no search provider configured")
	}
	return s.Discover(ctx, q, k, freshness, topic)
}

func (r Router) pick(q string) WebSearcher {
	if IsChineseQuery(q) && r.Bocha != nil {
		return r.Bocha
	}
	if r.Tavily != nil {
		return r.Tavily
	}
	return r.Bocha
}

var chineseRe = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)

// IsChineseQuery reports whether at least 30% of the query's non-space runes
// are CJK ideographs.
func IsChineseQuery(q string) bool {
	cleaned := strings.Join(strings.Fields(q), "")
	if cleaned == "" {
		return false
	}
	chinese := len(chineseRe.FindAllString(cleaned, -1))
	return float64(chinese)/float64(len([]rune(cleaned))) >= 0.3
}
