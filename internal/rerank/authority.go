package rerank

import (
	"net/url"
	"strings"
)

// Curated authoritative domains by topical category. A hit matches when its
// registrable domain equals an entry or is a subdomain of one.
var authorityDomains = map[string][]string{
	"finance": {
		"eastmoney.com", "cls.cn", "10jqka.com.cn", "sina.com.cn",
		"bloomberg.com", "reuters.com", "ft.com", "wsj.com", "cnbc.com",
	},
	"news": {
		"reuters.com", "apnews.com", "bbc.com", "nytimes.com",
		"xinhuanet.com", "people.com.cn", "cctv.com", "theguardian.com",
	},
	"tech": {
		"techcrunch.com", "theverge.com", "wired.com", "arstechnica.com",
		"36kr.com", "infoq.cn", "ithome.com",
	},
	"academic": {
		"nature.com", "science.org", "arxiv.org", "ieee.org", "acm.org",
		"springer.com", "sciencedirect.com",
	},
}

// ExtractDomain pulls the host out of a URL and strips a leading www.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// classifyAuthority scores a domain against the curated lists. A match in
// the topic's own category scores 1.0, a match elsewhere 0.8; .gov/.edu
// domains score 0.9; everything else is non-authoritative at 0.5.
func classifyAuthority(domain, topic string) (bool, float64) {
	if domain == "" {
		return false, 0.5
	}
	if listed(domain, authorityDomains[topic]) {
		return true, 1.0
	}
	for cat, domains := range authorityDomains {
		if cat == topic {
			continue
		}
		if listed(domain, domains) {
			return true, 0.8
		}
	}
	if strings.Contains(domain, ".gov") || strings.Contains(domain, ".edu") {
		return true, 0.9
	}
	return false, 0.5
}

func listed(domain string, domains []string) bool {
	for _, d := range domains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}
